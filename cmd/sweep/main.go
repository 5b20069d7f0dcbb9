// Command sweep wires the candidate stream, ranker, controller and (in RPC
// mode) the JSON RPC binding together into one CLI surface.
//
// The terminal render loop itself (raw mode, key/mouse decoding, actual
// cell painting) is out of scope (see internal/term's package doc); this
// binary drives the controller headlessly instead of through a concrete
// term.Loop: RPC mode serves the binding over stdin/stdout, and
// line-oriented mode runs the initial query to completion and prints the
// resulting matches, the same one-shot behavior a non-interactive embedder
// scripting this binary would want.
package main

import (
	"bufio"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/sweeptui/sweep/internal/candidate"
	"github.com/sweeptui/sweep/internal/config"
	"github.com/sweeptui/sweep/internal/controller"
	"github.com/sweeptui/sweep/internal/lineinput"
	"github.com/sweeptui/sweep/internal/preview"
	"github.com/sweeptui/sweep/internal/rank"
	"github.com/sweeptui/sweep/internal/rpcbind"
	"github.com/sweeptui/sweep/internal/scorer"
	"github.com/sweeptui/sweep/internal/theme"
)

// rootCmd is sweep's single command: a cobra.Command wrapping the flag set
// config registers, the same single-root shape used elsewhere to wrap a
// pflag.FlagSet in a cobra command.
var rootCmd = &cobra.Command{
	Use:           "sweep",
	Short:         "interactive fuzzy finder over a line-oriented or JSON candidate stream",
	SilenceErrors: true,
	SilenceUsage:  true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.FromFlags(cmd.Flags())
		if err != nil {
			return err
		}
		run(cfg)
		return nil
	},
}

func main() {
	config.RegisterFlags(rootCmd.Flags())
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "sweep:", err)
		os.Exit(2)
	}
}

func run(cfg *config.Config) {
	th := resolveTheme(cfg)
	th.ShowPreview = cfg.ShowPreview

	r := rank.NewRanker(func(*rank.RankedItems) bool { return true })
	defer r.Terminate()
	r.KeepOrder(&cfg.KeepOrder)
	if builder, ok := scorer.Builders[cfg.Scorer]; ok {
		r.ScorerSet(builder)
	}

	frame := controller.NewFrame(th, r, controller.DefaultKeyMap())
	frame.Prompt = cfg.Prompt
	frame.Icon = cfg.PromptIcon
	ctrl := controller.New(frame)
	ctrl.RPCMode = cfg.RPCMode
	if cfg.NoMatch == config.NoMatchInput {
		ctrl.NoMatchPolicy = controller.NoMatchInput
	}

	runner := preview.NewRunner(cfg.PreviewArgv)
	defer runner.Stop()

	if cfg.RPCMode {
		if cfg.InitialQuery != "" {
			ctrl.Submit(controller.Request{Kind: controller.ReqQuerySet, Query: cfg.InitialQuery})
		}
		stop := make(chan struct{})
		go driveTicks(ctrl, stop)
		defer close(stop)
		runRPC(ctrl, runner)
		return
	}

	// Headless line-oriented mode never renders a frame, so the needle is
	// set directly on the ranker rather than routed through the
	// controller's request queue.
	r.NeedleSet(cfg.InitialQuery)
	runLineOriented(cfg, r, runner)
}

// driveTicks stands in for the terminal render loop's frame cadence in the
// absence of a concrete term.Loop implementation: it periodically drains
// the controller's request queue so RPC handlers and batched haystack
// extends eventually get applied and answered.
func driveTicks(ctrl *controller.Controller, stop <-chan struct{}) {
	ticker := time.NewTicker(10 * time.Millisecond)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			ctrl.Tick(80, 24)
		case <-stop:
			return
		}
	}
}

func resolveTheme(cfg *config.Config) *theme.Theme {
	if cfg.Theme != "" {
		t, err := theme.ParseSpec(cfg.Theme)
		if err == nil {
			return t
		}
		fmt.Fprintf(os.Stderr, "sweep: invalid --theme %q: %v\n", cfg.Theme, err)
	}
	return theme.FromEnv()
}

func runRPC(ctrl *controller.Controller, runner *preview.Runner) {
	reg := rpcbind.NewRegistry(ctrl, runner)
	conn := rpcbind.NewConn(reg, os.Stdout)

	stop := make(chan struct{})
	go conn.ForwardEvents(ctrl, stop)
	defer close(stop)

	_ = conn.Notify("ready", map[string]string{"version": "1"})
	if err := conn.Serve(os.Stdin); err != nil {
		fmt.Fprintln(os.Stderr, "sweep: rpc:", err)
		os.Exit(1)
	}
}

func runLineOriented(cfg *config.Config, r *rank.Ranker, runner *preview.Runner) {
	opts := lineinput.Options{
		Delimiter: cfg.Delimiter,
		Selector:  cfg.FieldSelector,
		JSON:      cfg.JSONInput,
		BatchSize: 4096,
	}
	err := lineinput.Scan(os.Stdin, opts, func(batch []candidate.Haystack) error {
		if len(cfg.PreviewArgv) > 0 {
			for i, hay := range batch {
				if c, ok := hay.(*candidate.Candidate); ok {
					batch[i] = &preview.CandidatePreview{Candidate: c, Runner: runner}
				}
			}
		}
		r.HaystackExtend(batch)
		return nil
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, "sweep:", err)
		os.Exit(1)
	}

	synced := r.Sync()
	for !synced.Load() {
		time.Sleep(time.Millisecond)
	}

	out := bufio.NewWriter(os.Stdout)
	defer out.Flush()

	snapshot := r.Result()
	if snapshot.Len() == 0 {
		if cfg.NoMatch == config.NoMatchInput && cfg.InitialQuery != "" {
			fmt.Fprintln(out, cfg.InitialQuery)
		}
		return
	}
	for i := 0; i < snapshot.Len(); i++ {
		item, ok := snapshot.Get(i)
		if !ok {
			continue
		}
		hay, ok := r.HaystackItem(item.ID.HaystackIndex)
		if !ok {
			continue
		}
		if s, ok := hay.(fmt.Stringer); ok {
			fmt.Fprintln(out, s.String())
		}
	}
}
