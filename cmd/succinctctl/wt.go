package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/xflash-panda/succinct/pkg/persist"
	"github.com/xflash-panda/succinct/pkg/wavelet"
)

func newWTCmd() *cobra.Command {
	wtCmd := &cobra.Command{
		Use:   "wt",
		Short: "Build and query wavelet trees",
	}
	wtCmd.AddCommand(newWTBuildCmd(), newWTAccessCmd(), newWTRankCmd(), newWTSelectCmd())
	return wtCmd
}

// batchEntry is one (input, output) pair in a wt build --config batch file.
type batchEntry struct {
	Input  string `yaml:"input"`
	Output string `yaml:"output"`
}

type batchConfig struct {
	Builds []batchEntry `yaml:"builds"`
}

func newWTBuildCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "build [input_string_file] [out_file]",
		Short: "Build a wavelet tree from input_string_file, or a batch of them via --config",
		RunE: func(cmd *cobra.Command, args []string) error {
			if configPath != "" {
				return runBatchBuild(configPath)
			}
			if len(args) != 2 {
				return fmt.Errorf("expected input_string_file and out_file, or --config")
			}
			sigma, n, err := buildOne(args[0], args[1])
			if err != nil {
				return err
			}
			fmt.Println(sigma)
			fmt.Println(n)
			return nil
		},
	}
	cmd.Flags().StringVar(&configPath, "config", "", "YAML batch file naming several (input, output) pairs")
	return cmd
}

func buildOne(inputFile, outFile string) (sigma, n int, err error) {
	data, err := os.ReadFile(inputFile)
	if err != nil {
		return 0, 0, fmt.Errorf("read input: %w", err)
	}
	s := strings.TrimRight(string(data), "\n")

	tr := wavelet.New([]byte(s))
	if err := os.WriteFile(outFile, persist.MarshalTree(tr), 0o644); err != nil {
		return 0, 0, fmt.Errorf("write tree: %w", err)
	}
	return tr.NChars(), tr.Len(), nil
}

// runBatchBuild fans out one goroutine per batch entry via errgroup: builds
// are independent, read-only-at-the-source, and each writes a distinct
// output file, so no coordination is needed beyond waiting for all of them.
func runBatchBuild(configPath string) error {
	raw, err := os.ReadFile(configPath)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	var cfg batchConfig
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return fmt.Errorf("parse config: %w", err)
	}

	g, _ := errgroup.WithContext(context.Background())
	for _, entry := range cfg.Builds {
		entry := entry
		g.Go(func() error {
			sigma, n, err := buildOne(entry.Input, entry.Output)
			if err != nil {
				return fmt.Errorf("%s: %w", entry.Input, err)
			}
			fmt.Printf("%s: sigma=%d n=%d -> %s\n", entry.Input, sigma, n, entry.Output)
			return nil
		})
	}
	return g.Wait()
}

func newWTAccessCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "access <wt_file> <indices_file>",
		Short: "Print the character at each index named in indices_file",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			tr, err := loadTree(args[0])
			if err != nil {
				return err
			}
			indices, err := readLines(args[1])
			if err != nil {
				return fmt.Errorf("read indices file: %w", err)
			}

			w := bufio.NewWriter(os.Stdout)
			defer w.Flush()
			for _, line := range indices {
				i, err := strconv.Atoi(strings.TrimSpace(line))
				if err != nil {
					return fmt.Errorf("parse index %q: %w", line, err)
				}
				fmt.Fprintf(w, "%c\n", tr.Access(i))
			}
			return nil
		},
	}
}

func newWTRankCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rank <wt_file> <queries_file>",
		Short: "For each tab-separated <char>\\t<i> query, print Rank(char, i)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			tr, err := loadTree(args[0])
			if err != nil {
				return err
			}
			queries, err := readLines(args[1])
			if err != nil {
				return fmt.Errorf("read queries file: %w", err)
			}

			w := bufio.NewWriter(os.Stdout)
			defer w.Flush()
			for _, line := range queries {
				c, i, err := parseCharIntQuery(line)
				if err != nil {
					return err
				}
				fmt.Fprintln(w, tr.Rank(c, i))
			}
			return nil
		},
	}
}

func newWTSelectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "select <wt_file> <queries_file>",
		Short: "For each tab-separated <char>\\t<r> query, print Select(char, r)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			tr, err := loadTree(args[0])
			if err != nil {
				return err
			}
			queries, err := readLines(args[1])
			if err != nil {
				return fmt.Errorf("read queries file: %w", err)
			}

			w := bufio.NewWriter(os.Stdout)
			defer w.Flush()
			for _, line := range queries {
				c, r, err := parseCharIntQuery(line)
				if err != nil {
					return err
				}
				pos, ok := tr.Select(c, r)
				if !ok {
					fmt.Fprintln(w, "NF")
					continue
				}
				fmt.Fprintln(w, pos)
			}
			return nil
		},
	}
}

func loadTree(wtFile string) (*wavelet.Tree, error) {
	data, err := os.ReadFile(wtFile)
	if err != nil {
		return nil, fmt.Errorf("read tree: %w", err)
	}
	tr, err := persist.UnmarshalTree(data)
	if err != nil {
		return nil, fmt.Errorf("decode tree: %w", err)
	}
	return tr, nil
}

func parseCharIntQuery(line string) (byte, int, error) {
	parts := strings.SplitN(line, "\t", 2)
	if len(parts) != 2 || len(parts[0]) != 1 {
		return 0, 0, fmt.Errorf("malformed query %q: want <char>\\t<int>", line)
	}
	i, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return 0, 0, fmt.Errorf("parse int in query %q: %w", line, err)
	}
	return parts[0][0], i, nil
}
