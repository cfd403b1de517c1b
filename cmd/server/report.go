package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/spf13/cobra"

	"ethicsaudit/internal/report/models"
	"ethicsaudit/internal/report/stream"
)

type reportOptions struct {
	server             string
	token              string
	auditID            string
	title              string
	description        string
	customInstructions string
}

func newReportCmd() *cobra.Command {
	var opts reportOptions

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Generate a report through a running server and print it",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReport(cmd.Context(), http.DefaultClient, opts, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	cmd.Flags().StringVar(&opts.server, "server", "http://localhost:8080", "API base URL")
	cmd.Flags().StringVar(&opts.token, "token", "", "session token (see the token command)")
	cmd.Flags().StringVar(&opts.auditID, "audit", "", "audit id")
	cmd.Flags().StringVar(&opts.title, "title", "", "report title")
	cmd.Flags().StringVar(&opts.description, "description", "", "report description")
	cmd.Flags().StringVar(&opts.customInstructions, "instructions", "", "extra instructions for the writer")
	_ = cmd.MarkFlagRequired("audit")
	_ = cmd.MarkFlagRequired("token")
	return cmd
}

// runReport writes report text to out as it arrives and progress to status.
func runReport(ctx context.Context, client *http.Client, opts reportOptions, out, status io.Writer) error {
	body, err := json.Marshal(map[string]string{
		"auditId":            opts.auditID,
		"title":              opts.title,
		"description":        opts.description,
		"customInstructions": opts.customInstructions,
	})
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, strings.TrimRight(opts.server, "/")+"/api/reports", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", stream.ContentType)
	req.Header.Set("Authorization", "Bearer "+opts.token)

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("request report: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("server returned %s: %s", resp.Status, strings.TrimSpace(string(msg)))
	}

	dec := stream.NewDecoder(resp.Body)
	var acc stream.Accumulator
	for {
		ev, err := dec.Next()
		if errors.Is(err, stream.ErrDone) {
			break
		}
		if err != nil {
			return fmt.Errorf("read report stream: %w", err)
		}
		acc.Apply(ev)
		switch ev.Kind() {
		case models.KindStatus:
			fmt.Fprintf(status, "[%3d%%] %s\n", ev.Progress, ev.Message)
		case models.KindContent:
			if _, err := io.WriteString(out, ev.Text); err != nil {
				return err
			}
		}
	}

	if acc.Err != nil {
		if acc.Err.Details != "" {
			return fmt.Errorf("%s: %s (%s)", acc.Err.Code, acc.Err.Error, acc.Err.Details)
		}
		return fmt.Errorf("%s: %s", acc.Err.Code, acc.Err.Error)
	}
	if !acc.Finished() {
		return errors.New("stream ended without a result")
	}
	fmt.Fprintf(out, "\n")
	fmt.Fprintf(status, "report %s saved\n", acc.ReportID)
	return nil
}
