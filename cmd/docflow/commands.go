package main

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"docflow/internal/pipeline"
	"docflow/internal/publish"

	"github.com/spf13/cobra"
)

var (
	dryRun       bool
	fromCache    bool
	outDir       string
	historyLimit int
)

func init() {
	publishCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Publish into an in-memory workspace and print the page tree")
	publishCmd.Flags().BoolVar(&fromCache, "from-cache", false, "Reuse the last generated documentation instead of calling the model")
	generateCmd.Flags().StringVarP(&outDir, "out", "o", "docs", "Directory for the generated markdown files")
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 10, "Number of runs to show")
}

var publishCmd = &cobra.Command{
	Use:   "publish [path]",
	Short: "Analyze the project, generate documentation and publish it to Notion",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		a, err := loadApp()
		if err != nil {
			return err
		}
		defer a.log.Sync()

		store, err := initStore()
		if err != nil {
			return err
		}
		defer store.Close()

		deps := pipeline.Deps{Ledger: store, Logger: a.log}
		if !fromCache {
			if deps.Crawler, err = a.newCrawler(); err != nil {
				return err
			}
			if deps.Generator, err = a.newGenerator(ctx); err != nil {
				return err
			}
		}

		req := pipeline.Request{Mode: pipeline.ModePublish, Root: a.projectRoot(args), FromCache: fromCache}
		var workspace *publish.Workspace
		var rootID string
		if dryRun {
			workspace = publish.NewWorkspace()
			rootID = workspace.Seed("Dry Run")
			req.Mode = pipeline.ModeDryRun
			req.Publisher = a.newPublisher(workspace, rootID)
		} else {
			if req.Publisher, rootID, err = a.newNotionPublisher(); err != nil {
				return err
			}
		}

		out, err := pipeline.New(deps).Run(ctx, req)
		if err != nil {
			return err
		}

		for _, w := range out.Warnings {
			fmt.Printf("⚠️  %s\n", w)
		}
		if workspace != nil {
			tree, _ := workspace.Tree(rootID)
			fmt.Println("🧪 Dry run page tree:")
			fmt.Print(tree.Outline())
			return nil
		}

		fmt.Printf("✅ Published %d pages.\n", out.Result.Index.Len()-1)
		mainID, _ := out.Result.Index.Get(publish.KeyMain)
		fmt.Printf("🎉 Documentation is available at: %s\n", publish.PageURL(mainID))
		return nil
	},
}

var generateCmd = &cobra.Command{
	Use:   "generate [path]",
	Short: "Analyze the project and write the documentation as markdown",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		a, err := loadApp()
		if err != nil {
			return err
		}
		defer a.log.Sync()

		cr, err := a.newCrawler()
		if err != nil {
			return err
		}
		gen, err := a.newGenerator(ctx)
		if err != nil {
			return err
		}
		store, err := initStore()
		if err != nil {
			return err
		}
		defer store.Close()

		out, err := pipeline.New(pipeline.Deps{Crawler: cr, Generator: gen, Ledger: store, Logger: a.log}).Run(ctx, pipeline.Request{
			Mode:       pipeline.ModeGenerate,
			Root:       a.projectRoot(args),
			OutDir:     outDir,
			ReportPath: filepath.Join(outDir, "pipeline_report.json"),
		})
		if err != nil {
			return err
		}
		for _, w := range out.Warnings {
			fmt.Printf("⚠️  %s\n", w)
		}
		fmt.Printf("🎉 Documentation generated in %s (run %s)\n", outDir, out.RunID)
		return nil
	},
}

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Check the Notion token and access to the parent page",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := loadApp()
		if err != nil {
			return err
		}
		defer a.log.Sync()

		pub, rootID, err := a.newNotionPublisher()
		if err != nil {
			return err
		}
		fmt.Println("🔌 Testing Notion connection...")
		if err := pub.Verify(context.Background()); err != nil {
			return err
		}
		fmt.Printf("✅ Connected. Parent page: %s\n", publish.PageURL(rootID))
		return nil
	},
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent documentation runs",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		store, err := initStore()
		if err != nil {
			return err
		}
		defer store.Close()

		runs, err := store.ListRuns(ctx, historyLimit)
		if err != nil {
			return err
		}
		if len(runs) == 0 {
			fmt.Println("📭 No runs recorded yet.")
			return nil
		}
		for _, r := range runs {
			duration := "running"
			if !r.FinishedAt.IsZero() {
				duration = r.FinishedAt.Sub(r.StartedAt).Round(time.Millisecond).String()
			}
			fmt.Printf("🗂  %s  %-8s %-12s %s  (%s, %d pages, %d warnings)\n",
				r.StartedAt.Local().Format("2006-01-02 15:04:05"), r.Mode, r.Phase, r.Root, duration, r.Pages, len(r.Warnings))

			if r.Mode == pipeline.ModeDryRun {
				continue
			}
			pages, err := store.RunPages(ctx, r.ID)
			if err != nil {
				return err
			}
			for _, p := range pages {
				if p.Key == publish.KeyMain {
					fmt.Printf("    -> %s\n", publish.PageURL(p.PageID))
				}
			}
		}
		return nil
	},
}
