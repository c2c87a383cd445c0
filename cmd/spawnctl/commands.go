// Spawnwatch - Live Spawn Map and Scan Coordination
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/spawnwatch

package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/tomtom215/spawnwatch/internal/config"
	"github.com/tomtom215/spawnwatch/internal/database"
	spawnimport "github.com/tomtom215/spawnwatch/internal/import"
)

const defaultServer = "http://localhost:5000"

// maxResponseBytes caps how much of a server reply is read.
const maxResponseBytes = 1 << 20

// cli carries the shared flags and output of every command.
type cli struct {
	out    io.Writer
	client *http.Client
	server string
}

func newRootCmd(out io.Writer, client *http.Client) *cobra.Command {
	c := &cli{out: out, client: client}

	root := &cobra.Command{
		Use:           "spawnctl",
		Short:         "Operate a Spawnwatch server",
		Long:          `Query and move the scan origin of a Spawnwatch server, and import GeoJSON sightings.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(out)
	root.PersistentFlags().StringVarP(&c.server, "server", "s", envOr("SPAWNWATCH_URL", defaultServer), "Spawnwatch server base URL")

	root.AddCommand(c.locCmd(), c.nextLocCmd(), c.importCmd())
	return root
}

func (c *cli) locCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "loc",
		Short: "Print the current scan origin",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			body, err := c.do(cmd.Context(), http.MethodGet, "/loc", nil, "")
			if err != nil {
				return err
			}
			var loc struct {
				Lat float64 `json:"lat"`
				Lng float64 `json:"lng"`
			}
			if err := json.Unmarshal(body, &loc); err != nil {
				return fmt.Errorf("decode /loc response: %w", err)
			}
			fmt.Fprintf(c.out, "%.6f,%.6f\n", loc.Lat, loc.Lng)
			return nil
		},
	}
}

func (c *cli) nextLocCmd() *cobra.Command {
	var lat, lon float64
	cmd := &cobra.Command{
		Use:   "next-loc",
		Short: "Queue a scan redirect",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			form := url.Values{
				"lat": {strconv.FormatFloat(lat, 'f', -1, 64)},
				"lon": {strconv.FormatFloat(lon, 'f', -1, 64)},
			}
			body, err := c.do(cmd.Context(), http.MethodPost, "/next_loc",
				strings.NewReader(form.Encode()), "application/x-www-form-urlencoded")
			if err != nil {
				return err
			}
			fmt.Fprintln(c.out, strings.TrimSpace(string(body)))
			return nil
		},
	}
	cmd.Flags().Float64Var(&lat, "lat", 0, "Latitude in degrees")
	cmd.Flags().Float64Var(&lon, "lon", 0, "Longitude in degrees")
	_ = cmd.MarkFlagRequired("lat")
	_ = cmd.MarkFlagRequired("lon")
	return cmd
}

func (c *cli) importCmd() *cobra.Command {
	var dbPath string
	cmd := &cobra.Command{
		Use:   "import <file.geojson>",
		Short: "Import GeoJSON sightings",
		Long: `Import a GeoJSON FeatureCollection of pokemon sightings. The file is
posted to the server's /import route, or written straight into a DuckDB
database file with --db while the server is stopped.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			if dbPath != "" {
				return c.importToDB(cmd.Context(), dbPath, data)
			}
			body, err := c.do(cmd.Context(), http.MethodPost, "/import", bytes.NewReader(data), "application/geo+json")
			if err != nil {
				return err
			}
			fmt.Fprintln(c.out, strings.TrimSpace(string(body)))
			return nil
		},
	}
	cmd.Flags().StringVar(&dbPath, "db", "", "Write directly to this DuckDB file instead of the server")
	return cmd
}

func (c *cli) importToDB(ctx context.Context, path string, data []byte) error {
	db, err := database.New(&config.DatabaseConfig{Path: path, MaxMemory: "1GB"})
	if err != nil {
		return err
	}
	defer db.Close()

	stats, err := spawnimport.NewImporter(db, nil).Import(ctx, data)
	if err != nil {
		return err
	}
	fmt.Fprintln(c.out, stats.Summary())
	return nil
}

// do sends a request to the server and returns the body of a 200 reply.
// Other statuses become errors carrying the server's message.
func (c *cli) do(ctx context.Context, method, path string, body io.Reader, contentType string) ([]byte, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	req, err := http.NewRequestWithContext(ctx, method, strings.TrimRight(c.server, "/")+path, body)
	if err != nil {
		return nil, err
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		msg := strings.TrimSpace(string(data))
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		return nil, &statusError{Code: resp.StatusCode, Message: msg}
	}
	return data, nil
}

// statusError is a non-200 server reply.
type statusError struct {
	Code    int
	Message string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("server returned %d: %s", e.Code, e.Message)
}

// isStatus reports whether err is a server reply with the given code.
func isStatus(err error, code int) bool {
	var se *statusError
	return errors.As(err, &se) && se.Code == code
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
