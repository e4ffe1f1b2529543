package cmd

import (
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net/http"
	"net/http/httputil"
	"net/url"
	"os"
	"path"
	"strings"

	"github.com/spf13/cobra"
)

// NewUploadCmd stores an image as the current image
func NewUploadCmd(ctx context.Context) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "upload [uri]",
		Short: "make an image the current image",
		Long:  "reads a png or jpg from a file, stdin (-) or an http(s) url, converts it to grayscale and stores it as the current image",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			uri, _ := cmd.Flags().GetString("uri")
			if uri == "" && len(args) > 0 {
				uri = args[0]
			}
			if uri == "" {
				return fmt.Errorf("image uri is required. Use --uri flag or provide as argument")
			}
			name, _ := cmd.Flags().GetString("name")
			verbose, _ := cmd.Flags().GetBool("verbose")
			insecure, _ := cmd.Flags().GetBool("insecure")
			maxSize, _ := cmd.Flags().GetInt("max-size")

			in, inName, err := openURI(ctx, uri, verbose, insecure)
			if err != nil {
				return err
			}
			defer in.Close()
			if name == "" {
				name = inName
			}

			ws, err := openWorkspace(cmd)
			if err != nil {
				return err
			}
			s, err := ws.Upload(ctx, name, in, maxSize)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), s.ID)
			return nil
		},
	}
	pf := cmd.PersistentFlags()
	pf.StringP("uri", "u", "", "image URI (path, - for stdin, http(s)://)")
	pf.StringP("name", "n", "", "file name used for format checks (required for stdin)")
	pf.Int("max-size", 512, "scale images down so neither side exceeds this (0 keeps the size)")
	pf.BoolP("verbose", "v", false, "dump http request and response headers to stderr")
	pf.Bool("insecure", false, "skip tls verification for https uris")
	return cmd
}

// openURI opens a path, stdin or an http(s) url, and returns the name of the
// resource for extension checks.
func openURI(ctx context.Context, uri string, verbose, insecure bool) (io.ReadCloser, string, error) {
	uri = strings.TrimPrefix(uri, "file://")
	switch {
	case uri == "-":
		return io.NopCloser(os.Stdin), "", nil
	case strings.HasPrefix(uri, "http"):
		cl := &http.Client{
			Transport: &http.Transport{TLSClientConfig: &tls.Config{InsecureSkipVerify: insecure}},
		}
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, uri, nil)
		if err != nil {
			return nil, "", fmt.Errorf("failed to create request: %v", err)
		}
		resp, err := cl.Do(req)
		if err != nil {
			return nil, "", fmt.Errorf("failed to download: %v", err)
		}
		if verbose {
			reqDump, _ := httputil.DumpRequest(req, true)
			os.Stderr.Write(reqDump)
			resDump, _ := httputil.DumpResponse(resp, false)
			os.Stderr.Write(resDump)
		}
		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			return nil, "", fmt.Errorf("failed to download: %s", resp.Status)
		}
		name := uri
		if u, err := url.Parse(uri); err == nil {
			name = path.Base(u.Path)
		}
		return resp.Body, name, nil
	default:
		f, err := os.Open(uri)
		if err != nil {
			return nil, "", fmt.Errorf("failed to open file: %v", err)
		}
		return f, uri, nil
	}
}
