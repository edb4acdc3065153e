package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/altinukshini/dnafinder/internal/api"
	"github.com/altinukshini/dnafinder/internal/config"
	"github.com/altinukshini/dnafinder/internal/export"
	"github.com/altinukshini/dnafinder/internal/model"
	"github.com/altinukshini/dnafinder/internal/ops"
	"github.com/altinukshini/dnafinder/internal/validation"
)

func expiredNotice() api.Option {
	return api.WithUnauthorizedHandler(func() {
		fmt.Fprintln(os.Stderr, "Session expired. Run `dnafinder login` again.")
	})
}

type credentialFlags struct {
	email         string
	password      string
	passwordStdin bool
}

func (f *credentialFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.email, "email", "e", "", "Account email")
	cmd.Flags().StringVarP(&f.password, "password", "p", "", "Account password (prefer --password-stdin)")
	cmd.Flags().BoolVar(&f.passwordStdin, "password-stdin", false, "Read the password from stdin")
}

func (f *credentialFlags) credentials(stdin io.Reader) (model.Credentials, error) {
	creds := model.Credentials{Email: strings.TrimSpace(f.email), Password: f.password}
	if f.passwordStdin {
		line, err := bufio.NewReader(stdin).ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return creds, fmt.Errorf("read password: %w", err)
		}
		creds.Password = strings.TrimRight(line, "\r\n")
	}
	if creds.Password == "" {
		creds.Password = os.Getenv("DNA_PASSWORD")
	}
	return creds, nil
}

func loginCmd() *cobra.Command {
	var flags credentialFlags

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and keep the access token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			creds, err := flags.credentials(cmd.InOrStdin())
			if err != nil {
				return err
			}
			rt, err := setup()
			if err != nil {
				return err
			}
			defer rt.Close()

			if err := ops.Login(cmd.Context(), rt.env, creds); err != nil {
				rt.log.Info("login failed", "email", creds.Email, "err", err)
				return errors.New(ops.Describe(err, ops.FallbackLogin))
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s\n", creds.Email)
			return nil
		},
	}
	flags.bind(cmd)
	return cmd
}

func registerCmd() *cobra.Command {
	var flags credentialFlags

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			creds, err := flags.credentials(cmd.InOrStdin())
			if err != nil {
				return err
			}
			rt, err := setup()
			if err != nil {
				return err
			}
			defer rt.Close()

			if err := ops.Register(cmd.Context(), rt.env, creds); err != nil {
				return errors.New(ops.Describe(err, ops.FallbackRegister))
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Registration complete. Run `dnafinder login` to sign in.")
			return nil
		},
	}
	flags.bind(cmd)
	return cmd
}

func logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored access token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := setup()
			if err != nil {
				return err
			}
			defer rt.Close()

			if err := ops.Logout(rt.env); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Logged out")
			return nil
		},
	}
}

func searchCmd() *cobra.Command {
	var (
		file      string
		pattern   string
		algorithm string
		mode      string
		asJSON    bool
	)

	cmd := &cobra.Command{
		Use:   "search",
		Short: "Upload a CSV of sequences and search it for a pattern",
		Example: `  dnafinder search --file samples.csv --pattern ACGT
  dnafinder search -f samples.csv -P gattaca --algorithm rabin_karp --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var modeOverride config.SearchMode
			if mode != "" {
				m, err := config.ParseSearchMode(mode)
				if err != nil {
					return err
				}
				modeOverride = m
			}

			rt, err := setup(expiredNotice())
			if err != nil {
				return err
			}
			defer rt.Close()

			alg := rt.cfg.Algorithm
			if algorithm != "" {
				if alg, err = model.ParseAlgorithm(algorithm); err != nil {
					return err
				}
			}
			searchMode := rt.cfg.SearchMode
			if modeOverride != "" {
				searchMode = modeOverride
			}

			in := validation.SearchInput{FilePath: file, Pattern: pattern, Algorithm: alg}
			result, err := ops.RunSearch(cmd.Context(), rt.env, in, searchMode)
			if result == nil {
				return errors.New(ops.Describe(err, ops.FallbackSearch))
			}
			if err != nil {
				rt.log.Warn("search finished with error", "err", err)
			}

			out := newOutput(cmd.OutOrStdout())
			if asJSON {
				return out.JSON(result)
			}
			return out.Result(*result)
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "CSV file of sequences")
	cmd.Flags().StringVarP(&pattern, "pattern", "P", "", "Pattern to find (A, C, G, T; at least 3)")
	cmd.Flags().StringVarP(&algorithm, "algorithm", "a", "", "kmp or rabin_karp (default from config)")
	cmd.Flags().StringVar(&mode, "mode", "", "two-step or single (default from config)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the raw result as JSON")
	return cmd
}

func historyCmd() *cobra.Command {
	var (
		limit  int
		offset int
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recent searches",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := setup(expiredNotice())
			if err != nil {
				return err
			}
			defer rt.Close()

			if limit <= 0 {
				limit = rt.cfg.HistoryLimit
			}
			entries, err := rt.env.Client.History(cmd.Context(), api.HistoryFilter{Limit: limit, Offset: offset})
			if err != nil {
				rt.log.Error("load history", "err", err)
				return errors.New(ops.Describe(err, ops.FallbackHistory))
			}

			out := newOutput(cmd.OutOrStdout())
			if asJSON {
				return out.JSON(entries)
			}
			return out.History(entries)
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "Entries to fetch (default from config)")
	cmd.Flags().IntVar(&offset, "offset", 0, "Entries to skip")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print entries as JSON")
	return cmd
}

func lastResult(rt *deps) (*model.SearchResult, error) {
	r, err := rt.env.Store.LastResult()
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, errors.New("no results yet, run `dnafinder search` first")
	}
	return r, nil
}

func resultsCmd() *cobra.Command {
	var (
		asJSON bool
		pager  bool
	)

	cmd := &cobra.Command{
		Use:   "results",
		Short: "Show the last search result",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := setup()
			if err != nil {
				return err
			}
			defer rt.Close()

			r, err := lastResult(rt)
			if err != nil {
				return err
			}

			if pager {
				return pageResult(*r)
			}
			out := newOutput(cmd.OutOrStdout())
			if asJSON {
				return out.JSON(r)
			}
			return out.Result(*r)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the result as JSON")
	cmd.Flags().BoolVar(&pager, "pager", false, "Browse the match table in a pager")
	return cmd
}

func exportCmd() *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the last search result to " + export.FileName,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := setup()
			if err != nil {
				return err
			}
			defer rt.Close()

			r, err := lastResult(rt)
			if err != nil {
				return err
			}
			if dir == "" {
				dir = rt.cfg.ExportDir
			}
			path, err := export.WriteFile(dir, *r)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d matches to %s\n", len(r.Matches), path)
			return nil
		},
	}

	cmd.Flags().StringVarP(&dir, "dir", "d", "", "Directory to write into (default from config)")
	return cmd
}

func configCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the configuration file",
	}

	var path string
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write a config.toml with the defaults",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if path == "" {
				path = configPath
			}
			written, err := config.WriteDefault(path)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", written)
			return nil
		},
	}
	initCmd.Flags().StringVar(&path, "path", "", "Where to write (default: user config dir)")
	cmd.AddCommand(initCmd)

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			return newOutput(cmd.OutOrStdout()).Config(cfg)
		},
	})
	return cmd
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "dnafinder", version)
		},
	}
}
