package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/xflash-panda/succinct/pkg/bloom"
	"github.com/xflash-panda/succinct/pkg/persist"
)

func newBFCmd() *cobra.Command {
	bfCmd := &cobra.Command{
		Use:   "bf",
		Short: "Build and query Bloom filters",
	}
	bfCmd.AddCommand(newBFBuildCmd(), newBFQueryCmd())
	return bfCmd
}

func newBFBuildCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "build <key_file> <fpr> <n_keys> <out_file>",
		Short: "Build a Bloom filter sized for fpr over n_keys keys from key_file",
		Args:  cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			keyFile, fprStr, nKeysStr, outFile := args[0], args[1], args[2], args[3]

			fpr, err := strconv.ParseFloat(fprStr, 64)
			if err != nil {
				return fmt.Errorf("parse fpr: %w", err)
			}
			nKeys, err := strconv.Atoi(nKeysStr)
			if err != nil {
				return fmt.Errorf("parse n_keys: %w", err)
			}

			keys, err := readLines(keyFile)
			if err != nil {
				return fmt.Errorf("read key file: %w", err)
			}

			f := bloom.WithFPR(fpr, nKeys)
			for _, k := range keys {
				f.Insert([]byte(k))
			}

			if err := os.WriteFile(outFile, persist.MarshalFilter(f), 0o644); err != nil {
				return fmt.Errorf("write filter: %w", err)
			}
			return nil
		},
	}
}

func newBFQueryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "query <bf_file> <query_file>",
		Short: "Query each key in query_file against a built Bloom filter",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			bfFile, queryFile := args[0], args[1]

			data, err := os.ReadFile(bfFile)
			if err != nil {
				return fmt.Errorf("read filter: %w", err)
			}
			f, err := persist.UnmarshalFilter(data)
			if err != nil {
				return fmt.Errorf("decode filter: %w", err)
			}

			keys, err := readLines(queryFile)
			if err != nil {
				return fmt.Errorf("read query file: %w", err)
			}

			w := bufio.NewWriter(os.Stdout)
			defer w.Flush()
			for _, k := range keys {
				mark := "N"
				if f.Query([]byte(k)) {
					mark = "Y"
				}
				fmt.Fprintf(w, "%s:%s\n", k, mark)
			}
			return nil
		},
	}
}

func readLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var lines []string
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 64*1024), 1024*1024)
	for sc.Scan() {
		line := sc.Text()
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines, sc.Err()
}
