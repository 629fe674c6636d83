package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"time"

	"starmap/cmd"
	"starmap/internal/core/domain/services"

	"github.com/spf13/cobra"
)

const defaultWebhookURL = "http://localhost:8080/api/shopify/order"

// readPayload reads the file named by --file, or stdin for "-".
func readPayload(c *cobra.Command) ([]byte, error) {
	file, _ := c.Flags().GetString("file")
	if file == "-" {
		return io.ReadAll(c.InOrStdin())
	}
	return os.ReadFile(file)
}

// webhookSecret prefers --secret and falls back to SHOPIFY_WEBHOOK_SECRET.
func webhookSecret(c *cobra.Command) (string, error) {
	if secret, _ := c.Flags().GetString("secret"); secret != "" {
		return secret, nil
	}
	envFile, _ := c.Flags().GetString("env-file")
	cfg, err := cmd.LoadConfig(envFile)
	if err != nil {
		return "", err
	}
	if cfg.ShopifyWebhookSecret == "" {
		return "", errors.New("no secret: pass --secret or set SHOPIFY_WEBHOOK_SECRET")
	}
	return cfg.ShopifyWebhookSecret, nil
}

func addPayloadFlags(c *cobra.Command) {
	c.Flags().StringP("file", "f", "-", "order payload, - for stdin")
	c.Flags().StringP("secret", "s", "", "webhook secret, defaults to SHOPIFY_WEBHOOK_SECRET")
}

func signCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "sign",
		Short: "Print the webhook signature of an order payload",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			body, err := readPayload(c)
			if err != nil {
				return err
			}
			secret, err := webhookSecret(c)
			if err != nil {
				return err
			}
			auth := services.NewWebhookAuthenticator(secret, slog.New(slog.DiscardHandler))
			fmt.Fprintln(c.OutOrStdout(), auth.Sign(body))
			return nil
		},
	}
	addPayloadFlags(c)
	return c
}

func replayCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "replay",
		Short: "Sign an order payload and deliver it to the webhook endpoint",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			body, err := readPayload(c)
			if err != nil {
				return err
			}
			secret, err := webhookSecret(c)
			if err != nil {
				return err
			}
			target, _ := c.Flags().GetString("url")
			timeout, _ := c.Flags().GetDuration("timeout")

			auth := services.NewWebhookAuthenticator(secret, slog.New(slog.DiscardHandler))
			req, err := http.NewRequestWithContext(c.Context(), http.MethodPost, target, bytes.NewReader(body))
			if err != nil {
				return err
			}
			req.Header.Set("Content-Type", "application/json")
			req.Header.Set(services.SignatureHeader, auth.Sign(body))

			resp, err := (&http.Client{Timeout: timeout}).Do(req)
			if err != nil {
				return err
			}
			defer resp.Body.Close()

			fmt.Fprintf(c.OutOrStdout(), "%s\n", resp.Status)
			if _, err := io.Copy(c.OutOrStdout(), resp.Body); err != nil {
				return err
			}
			fmt.Fprintln(c.OutOrStdout())

			if resp.StatusCode >= http.StatusBadRequest {
				return fmt.Errorf("delivery rejected: %s", resp.Status)
			}
			return nil
		},
	}
	addPayloadFlags(c)
	c.Flags().String("url", defaultWebhookURL, "webhook endpoint")
	c.Flags().Duration("timeout", 5*time.Minute, "request timeout")
	return c
}
