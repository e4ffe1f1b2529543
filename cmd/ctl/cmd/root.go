package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/jpfielding/fourier.go/pkg/logging"
	"github.com/jpfielding/fourier.go/pkg/workspace"
	"github.com/spf13/cobra"
)

func NewRoot(ctx context.Context, gitsha string) *cobra.Command {
	var logOut io.WriteCloser
	cmd := &cobra.Command{
		Use:           "fourierctl",
		Short:         "a CLI for frequency domain filtering and compression of grayscale images",
		Long:          "upload an image, then view its spectrum, filter it in the Fourier domain or compress it by truncating block DFT/DCT coefficients",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logLevel, _ := cmd.Flags().GetString("log-level")
			logJSON, _ := cmd.Flags().GetBool("log-json")
			logFile, _ := cmd.Flags().GetString("log-file")

			// Parse log level
			var level slog.Level
			levelErr := level.UnmarshalText([]byte(strings.ToUpper(logLevel)))
			if levelErr != nil {
				level = slog.LevelInfo
			}
			var out io.Writer = os.Stderr
			if logFile != "" {
				logOut = logging.Rotating(logFile, 10, 3)
				out = logOut
			}
			slog.SetDefault(logging.Logger(out, logJSON, level))

			if levelErr != nil {
				slog.WarnContext(ctx, "Invalid log level, defaulting to INFO", "level", logLevel, "error", levelErr)
			}
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if logOut == nil {
				return
			}
			slog.SetDefault(logging.Logger(os.Stderr, false, slog.LevelInfo))
			logOut.Close()
			logOut = nil
		},
		Run: func(cmd *cobra.Command, args []string) {
			printCommandTree(cmd, 0)
		},
	}
	cmd.AddCommand(
		NewVersionCmd(ctx, gitsha),
		NewUploadCmd(ctx),
		NewFourierCmd(ctx),
		NewFilterCmd(ctx),
		NewCompressCmd(ctx),
		NewDiffCmd(ctx),
	)
	pf := cmd.PersistentFlags()
	pf.String("log-level", "INFO", "Log level (DEBUG, INFO, WARN, ERROR)")
	pf.Bool("log-json", false, "Log as json instead of text")
	pf.String("log-file", "", "Log to a rotating file instead of stderr")
	pf.String("data-dir", defaultDataDir(), "Directory holding the current image and its views")
	return cmd
}

func defaultDataDir() string {
	if dir, err := os.UserCacheDir(); err == nil {
		return filepath.Join(dir, "fourierctl")
	}
	return filepath.Join(os.TempDir(), "fourierctl")
}

// openWorkspace opens the workspace named by --data-dir
func openWorkspace(cmd *cobra.Command) (*workspace.Workspace, error) {
	dir, _ := cmd.Flags().GetString("data-dir")
	return workspace.Open(dir)
}

// currentSession resolves the session of the last upload
func currentSession(cmd *cobra.Command) (*workspace.Session, error) {
	ws, err := openWorkspace(cmd)
	if err != nil {
		return nil, err
	}
	return ws.Current()
}

func printCommandTree(cmd *cobra.Command, indent int) {
	fmt.Fprintln(cmd.OutOrStdout(), strings.Repeat("\t", indent), cmd.Use+":", cmd.Short)
	for _, subCmd := range cmd.Commands() {
		printCommandTree(subCmd, indent+1)
	}
}

func NewVersionCmd(ctx context.Context, gitsha string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "git sha for this build",
		Long:  "git sha for this build",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), gitsha)
		},
	}
	return cmd
}
