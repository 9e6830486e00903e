package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aria-lang/hspflow/internal/batch"
	"github.com/aria-lang/hspflow/internal/config"
	"github.com/aria-lang/hspflow/internal/records"
	"github.com/aria-lang/hspflow/internal/sequence"
	"github.com/aria-lang/hspflow/internal/writers"
	"github.com/aria-lang/hspflow/pkg/hspflow"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "hspflow",
		Short:         "Decode local alignment records into match lines and query position sets",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newAnalyzeCmd(), newBatchCmd(), newRegionCmd(), newVersionCmd())
	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprint(cmd.OutOrStdout(), hspflow.Info())
			return nil
		},
	}
}

func newAnalyzeCmd() *cobra.Command {
	var (
		t      hspflow.AlignedTriple
		strict bool
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Decode one aligned triple into a match line and position sets",
		Example: `  hspflow analyze --query MK-LV --hit MRALV --similarity "M+ LV" \
    --start 10 --end 14 --length 100 --frame 1`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if strict {
				if err := hspflow.ValidateRows(t.Query, t.Hit); err != nil {
					return err
				}
			}
			res, err := hspflow.Analyze(&t)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON {
				return json.NewEncoder(out).Encode(map[string]any{
					"match_line":          res.MatchLine,
					"identical_positions": res.Identical,
					"positive_positions":  res.Positive,
				})
			}
			fmt.Fprintln(out, res.Format(&t))
			fmt.Fprintf(out, "Identical positions: %s\n", joinInts(res.Identical.Values()))
			fmt.Fprintf(out, "Positive positions:  %s\n", joinInts(res.Positive.Values()))
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&t.Query, "query", "", "Aligned query row")
	f.StringVar(&t.Hit, "hit", "", "Aligned hit row")
	f.StringVar(&t.Similarity, "similarity", "", "Similarity annotation row")
	f.IntVar(&t.QueryStart, "start", 0, "Query start coordinate")
	f.IntVar(&t.QueryEnd, "end", 0, "Query end coordinate")
	f.IntVar(&t.QueryLength, "length", 0, "Full query length")
	f.IntVar(&t.QueryFrame, "frame", 1, "Query frame; negative reads the reverse strand")
	f.IntVar(&t.Multiplier, "multiplier", 1, "Query coordinates per aligned column")
	f.BoolVar(&strict, "strict", false, "Reject rows with characters outside the residue alphabet")
	f.BoolVar(&asJSON, "json", false, "Print JSON instead of text")
	for _, name := range []string{"query", "hit", "similarity", "end", "length"} {
		cmd.MarkFlagRequired(name)
	}
	return cmd
}

type batchFlags struct {
	input      string
	queries    string
	configPath string
	format     string
	output     string
	flavour    string
	workers    int
	onError    string
	strict     bool
	stats      bool
}

func newBatchCmd() *cobra.Command {
	var bf batchFlags

	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Prepare a JSON Lines file of hits",
		Long: `Reads one hit per line (query_id, target_id, query_length, target_length
and hsps), prepares every hit concurrently and writes one summary per hit.

Records that cannot be decoded are skipped and logged unless --on-error=abort.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBatch(cmd, bf)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&bf.input, "input", "i", "-", "JSON Lines hit records (- for stdin)")
	f.StringVarP(&bf.queries, "queries", "q", "", "FASTA of query sequences, used for missing query lengths")
	f.StringVarP(&bf.configPath, "config", "c", "", "YAML configuration file")
	f.StringVarP(&bf.format, "format", "f", "jsonl", "Output format ("+strings.Join(writers.Formats(), ", ")+")")
	f.StringVarP(&bf.output, "output", "o", "-", "Output file (- for stdout)")
	f.StringVar(&bf.flavour, "flavour", "", "Search flavour (blastn, blastp, blastx, tblastn, tblastx)")
	f.IntVarP(&bf.workers, "workers", "w", 0, "Concurrent workers (0 uses the configuration)")
	f.StringVar(&bf.onError, "on-error", "", "Failing records: skip or abort")
	f.BoolVar(&bf.strict, "strict", false, "Reject rows with characters outside the residue alphabet")
	f.BoolVar(&bf.stats, "stats", false, "Print batch statistics to stderr")
	return cmd
}

func runBatch(cmd *cobra.Command, bf batchFlags) error {
	cfg, err := config.Load(bf.configPath)
	if err != nil {
		return err
	}
	if bf.flavour != "" {
		cfg.Flavour = strings.ToLower(bf.flavour)
	}
	if bf.workers > 0 {
		cfg.Workers = bf.workers
	}
	if bf.onError != "" {
		cfg.OnError = batch.Policy(bf.onError)
	}
	if bf.strict {
		cfg.StrictResidues = true
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger := cfg.Log.NewLogger(cmd.ErrOrStderr())

	ropts := records.Options{Strict: cfg.StrictResidues}
	if bf.queries != "" {
		lengths, err := sequence.ReadLengths(bf.queries)
		if err != nil {
			return err
		}
		ropts.QueryLengths = lengths
	}

	in, closeIn, err := openInput(cmd, bf.input)
	if err != nil {
		return err
	}
	defer closeIn()

	hits, err := records.Read(in, ropts)
	if err != nil {
		return err
	}

	opts, err := cfg.BatchOptions()
	if err != nil {
		return err
	}
	report, err := batch.NewRunner(opts, logger).Run(cmd.Context(), hits)
	if err != nil {
		return err
	}

	out, closeOut, err := openOutput(cmd, bf.output)
	if err != nil {
		return err
	}
	defer closeOut()

	if err := writers.Write(bf.format, out, report.Summaries); err != nil && !writers.IsBrokenPipe(err) {
		return err
	}

	if bf.stats && report.Stats != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), report.Stats)
	}
	if len(report.Skipped) > 0 {
		logger.Warn("records skipped",
			slog.String("run_id", report.RunID.String()),
			slog.Int("count", len(report.Skipped)),
		)
	}
	return nil
}

func newRegionCmd() *cobra.Command {
	var (
		identical, positive []int
		start, end, frame   int
	)

	cmd := &cobra.Command{
		Use:   "region",
		Short: "Identity and similarity over a query interval",
		Example: `  hspflow region --identical 0,1,2,10 --positive 0,1,2,3,10 --start 0 --end 5`,
		RunE: func(cmd *cobra.Command, args []string) error {
			id, pos := hspflow.NewPositions(identical...), hspflow.NewPositions(positive...)
			rs, err := hspflow.Region(id, pos, start, end, frame)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, rs)
			fmt.Fprintf(out, "Profile: %s\n", hspflow.ProfileLine(id, pos, start, end, frame))
			return nil
		},
	}

	f := cmd.Flags()
	f.IntSliceVar(&identical, "identical", nil, "Identical query positions")
	f.IntSliceVar(&positive, "positive", nil, "Positive query positions")
	f.IntVar(&start, "start", 0, "Region start (inclusive)")
	f.IntVar(&end, "end", 0, "Region end")
	f.IntVar(&frame, "frame", 1, "Query frame of the HSP; negative counts (start, end] instead of [start, end)")
	cmd.MarkFlagRequired("end")
	return cmd
}

func openInput(cmd *cobra.Command, path string) (io.Reader, func(), error) {
	if path == "" || path == "-" {
		return cmd.InOrStdin(), func() {}, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open input: %w", err)
	}
	return f, func() { f.Close() }, nil
}

func openOutput(cmd *cobra.Command, path string) (io.Writer, func(), error) {
	if path == "" || path == "-" {
		return cmd.OutOrStdout(), func() {}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create output: %w", err)
	}
	return f, func() { f.Close() }, nil
}

func joinInts(values []int) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, ",")
}
