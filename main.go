package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sadopc/garden/internal/config"
	"github.com/sadopc/garden/internal/daily"
	"github.com/sadopc/garden/internal/logger"
	"github.com/sadopc/garden/internal/store"
	"github.com/sadopc/garden/internal/tui"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var version = "0.1.0"

// Global flags
var (
	configPath string
	dbPath     string
	logLevel   string
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "garden",
		Short:         "A daily wellbeing tracker for the terminal",
		Long:          "garden tracks your daily routines, a brain dump, an evening reflection and simple trends.\nAll data stays in a local SQLite file.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withGarden(func(g *gardenEnv) error {
				app := tui.NewApp(g.day, g.log, g.cfg.TrendDays)
				p := tea.NewProgram(app, tea.WithAltScreen())
				_, err := p.Run()
				return err
			})
		},
	}

	root.PersistentFlags().StringVar(&configPath, "config", "", "config file (default $XDG_CONFIG_HOME/garden/config.toml)")
	root.PersistentFlags().StringVar(&dbPath, "db", "", "database path (overrides db_path)")
	root.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error")

	root.AddCommand(statusCmd())
	root.AddCommand(toggleCmd())
	root.AddCommand(dumpCmd())
	root.AddCommand(reflectCmd())
	root.AddCommand(saveCmd())
	root.AddCommand(doctorCmd())
	root.AddCommand(versionCmd())
	return root
}

// gardenEnv bundles everything a command needs.
type gardenEnv struct {
	cfg config.Config
	log *zap.Logger
	db  *store.Store
	day *daily.Store
}

// withGarden runs fn with an initialized daily store.
func withGarden(fn func(*gardenEnv) error) error {
	return withEnv(func(g *gardenEnv) error {
		if err := g.day.Initialize(); err != nil {
			// The in-memory state is still valid; the next write retries.
			g.log.Warn("initialize: rollover not persisted", zap.Error(err))
		}
		return fn(g)
	})
}

// withEnv opens config, logger and database and runs fn. The daily store is
// not initialized, so nothing is read or written yet. Everything is closed
// when fn returns.
func withEnv(fn func(*gardenEnv) error) error {
	path := configPath
	if path == "" {
		p, err := config.ResolveConfigPath()
		if err != nil {
			return fmt.Errorf("resolve config path: %w", err)
		}
		path = p
	}
	cfg, err := config.LoadOrCreate(path)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if dbPath != "" {
		cfg.DBPath = dbPath
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}

	log, err := logger.New(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		return err
	}
	defer log.Sync()

	db, err := store.New(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	return fn(&gardenEnv{cfg: cfg, log: log, db: db, day: daily.New(db, log)})
}

func statusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Print today's tasks, growth and reflection",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withGarden(func(g *gardenEnv) error {
				printStatus(cmd.OutOrStdout(), g.day.Snapshot())
				return nil
			})
		},
	}
}

func printStatus(w io.Writer, snap daily.Snapshot) {
	stage := snap.Stage()
	done, total := snap.CompletedCount()
	fmt.Fprintf(w, "%s  %s  %d%% (%d/%d)\n", snap.Date, stage.Glyph, snap.Completion, done, total)
	fmt.Fprintf(w, "   %s\n", stage.Message)

	for _, sec := range daily.Sections {
		fmt.Fprintf(w, "\n%s\n", sec.Title())
		for _, t := range snap.Board.Tasks(sec) {
			box := "[ ]"
			if t.Completed {
				box = "[x]"
			}
			fmt.Fprintf(w, "  %s %-3s %s %s\n", box, t.ID, t.Icon, t.Label)
		}
	}

	if len(snap.Scratch) > 0 {
		fmt.Fprintf(w, "\nBrain dump\n")
		for _, it := range snap.Scratch {
			fmt.Fprintf(w, "  %d  %s\n", it.ID, it.Text)
		}
	}

	r := snap.Reflection
	fmt.Fprintf(w, "\nReflection  mood %d/10  energy %d/10  focus %d/10\n", r.Mood, r.Energy, r.Focus)
	if r.Notes != "" {
		fmt.Fprintf(w, "  %s\n", r.Notes)
	}
	fmt.Fprintf(w, "\n💡 %s\n", snap.Insight())
}

func toggleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "toggle SECTION TASK_ID",
		Short: "Check or uncheck a task (sections: morning, day, evening)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			section, err := daily.ParseSection(args[0])
			if err != nil {
				return err
			}
			return withGarden(func(g *gardenEnv) error {
				if err := g.day.ToggleTask(section, args[1]); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "growth: %d%%\n", g.day.Completion())
				return nil
			})
		},
	}
}

func dumpCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dump TEXT",
		Short: "Add a thought to the brain dump",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withGarden(func(g *gardenEnv) error {
				item, ok, err := g.day.AddScratchItem(args[0])
				if err != nil {
					return err
				}
				if !ok {
					fmt.Fprintln(cmd.OutOrStdout(), "nothing to add")
					return nil
				}
				fmt.Fprintf(cmd.OutOrStdout(), "added %d\n", item.ID)
				return nil
			})
		},
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "rm ID",
		Short: "Remove a thought from the brain dump",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid id %q: %w", args[0], err)
			}
			return withGarden(func(g *gardenEnv) error {
				removed, err := g.day.RemoveScratchItem(id)
				if err != nil {
					return err
				}
				if !removed {
					fmt.Fprintf(cmd.OutOrStdout(), "no item %d\n", id)
				}
				return nil
			})
		},
	})
	return cmd
}

func reflectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reflect FIELD VALUE",
		Short: "Set a reflection field (mood, energy, focus: 1-10; notes: text)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withGarden(func(g *gardenEnv) error {
				return g.day.UpdateReflectionField(daily.Field(args[0]), args[1])
			})
		},
	}
}

func saveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "save",
		Short: "Save today's reflection to the history log",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withGarden(func(g *gardenEnv) error {
				e, err := g.day.CommitReflection()
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Reflection saved for %s (growth %d%%) 🌱\n", e.Date, e.CompletionPercentage)
				return nil
			})
		},
	}
}

// doctorCmd reports slots that would silently fall back to defaults.
func doctorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check stored data for unreadable slots",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEnv(func(g *gardenEnv) error {
				slots, err := g.db.ListSlots()
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				var bad int
				for _, sl := range slots {
					state := "ok"
					if err := daily.ValidateSlot(sl.Key, sl.Value); err != nil {
						state = "corrupt: " + err.Error()
						bad++
					}
					fmt.Fprintf(out, "%-12s %6d bytes  %s  %s\n", sl.Key, len(sl.Value), sl.UpdatedAt.Local().Format("2006-01-02 15:04"), state)
				}
				if bad > 0 {
					return errors.New("some slots are unreadable and will be reset to defaults")
				}
				return nil
			})
		},
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "garden %s\n", version)
		},
	}
}
