package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jpmhone/folio/internal/blog"
	"github.com/jpmhone/folio/internal/sitemap"
	"github.com/jpmhone/folio/pkg/cache"
	"github.com/jpmhone/folio/pkg/config"
	"github.com/jpmhone/folio/pkg/file"
	"github.com/jpmhone/folio/pkg/pg"
)

var sitemapCmd = &cobra.Command{
	Use:   "sitemap",
	Short: "Generate sitemap.xml and write it to the configured storage",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()
		log, err := newLogger()
		if err != nil {
			return err
		}

		var (
			pgCfg      pg.Config
			sitemapCfg sitemap.Config
			storageCfg file.Config
		)
		if err := config.Load(&pgCfg); err != nil {
			return err
		}
		if err := config.Load(&sitemapCfg); err != nil {
			return err
		}
		if err := config.Load(&storageCfg); err != nil {
			return err
		}

		entries, err := sitemap.LoadEntries(sitemapCfg.StaticFile)
		if err != nil {
			return err
		}
		storage, err := file.New(ctx, storageCfg)
		if err != nil {
			return err
		}
		pool, err := pg.Connect(ctx, pgCfg)
		if err != nil {
			return err
		}
		defer pool.Close()

		gen := sitemap.NewGenerator(sitemapCfg, blog.NewPGStore(pool), cache.NewMemory(1),
			sitemap.WithLogger(log), sitemap.WithEntries(entries))
		f, err := gen.Publish(ctx, storage)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), f.URL)
		return nil
	},
}
