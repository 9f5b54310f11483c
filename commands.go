package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"devblog/pkg/logger"
	"devblog/pkg/models"
	"devblog/pkg/services"

	"github.com/spf13/cobra"
)

var articlesOpts struct {
	category string
	tag      string
	recent   int
	featured bool
}

var articlesCmd = &cobra.Command{
	Use:   "articles",
	Short: "List articles",
	Long: `List articles in store order, one per line.

--recent N lists the N newest instead; --featured lists featured articles.
--category and --tag filter the listing and may be combined.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := loadStore(cfg)
		if err != nil {
			return err
		}

		var articles []models.Article
		switch {
		case articlesOpts.featured:
			articles = store.ListFeatured()
		case cmd.Flags().Changed("recent"):
			articles = store.ListRecent(articlesOpts.recent)
		default:
			articles = store.ListByCategory(services.AllCategories)
		}
		articles = filterArticles(articles, articlesOpts.category, articlesOpts.tag)

		printArticles(cmd.OutOrStdout(), articles)
		return nil
	},
}

var tagsCmd = &cobra.Command{
	Use:   "tags",
	Short: "List every tag, sorted",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := loadStore(cfg)
		if err != nil {
			return err
		}
		for _, tag := range store.ListAllTags() {
			fmt.Fprintln(cmd.OutOrStdout(), tag)
		}
		return nil
	},
}

var slugifyCmd = &cobra.Command{
	Use:   "slugify TEXT...",
	Short: "Print the slug for each argument",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, arg := range args {
			fmt.Fprintln(cmd.OutOrStdout(), services.Slugify(arg))
		}
		return nil
	},
}

var newOpts struct {
	dir      string
	category string
	author   string
	format   string
}

var newCmd = &cobra.Command{
	Use:   "new TITLE",
	Short: "Scaffold a new article file in the content directory",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := newOpts.dir
		if dir == "" {
			dir = cfg.ContentDir
		}
		if dir == "" {
			return errors.New("no content directory: pass --dir or set CONTENT_DIR")
		}
		path, err := scaffoldArticle(dir, args[0], newOpts.category, newOpts.author, newOpts.format, time.Now())
		if err != nil {
			return err
		}
		logger.Infof("created %s", path)
		fmt.Fprintln(cmd.OutOrStdout(), path)
		return nil
	},
}

func init() {
	articlesCmd.Flags().StringVar(&articlesOpts.category, "category", services.AllCategories, "only this category")
	articlesCmd.Flags().StringVar(&articlesOpts.tag, "tag", "", "only articles with this tag")
	articlesCmd.Flags().IntVar(&articlesOpts.recent, "recent", services.DefaultRecentLimit, "newest N articles")
	articlesCmd.Flags().BoolVar(&articlesOpts.featured, "featured", false, "featured articles only")

	newCmd.Flags().StringVar(&newOpts.dir, "dir", "", "content directory (default CONTENT_DIR)")
	newCmd.Flags().StringVar(&newOpts.category, "category", "", "article category (default: first category in site.yml, else "+defaultCategory+")")
	newCmd.Flags().StringVar(&newOpts.author, "author", "Blog Author", "article author")
	newCmd.Flags().StringVar(&newOpts.format, "format", services.FormatYAML, "front matter format: yaml, toml or json")
}

// filterArticles narrows a listing by category ("All" keeps every one) and,
// when tag is non-empty, by tag.
func filterArticles(articles []models.Article, category, tag string) []models.Article {
	return slices.DeleteFunc(articles, func(art models.Article) bool {
		if category != services.AllCategories && art.Category != category {
			return true
		}
		return tag != "" && !slices.Contains(art.Tags, tag)
	})
}

func printArticles(w io.Writer, articles []models.Article) {
	for _, art := range articles {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", art.Slug, services.FormatDate(art.PublishedAt), art.Category, art.Title)
	}
}

const defaultCategory = "Uncategorized"

// scaffoldArticle writes <slug>.md under dir and refuses to overwrite. When
// dir has a site.yml listing categories, category must be one of them; an
// empty category picks the first.
func scaffoldArticle(dir, title, category, author, format string, now time.Time) (string, error) {
	site, err := services.LoadSiteConfig(os.DirFS(dir), ".")
	if err != nil {
		return "", err
	}
	allowed := services.SiteCategories(site)
	switch {
	case category == "" && len(allowed) > 0:
		category = allowed[0]
	case category == "":
		category = defaultCategory
	case len(allowed) > 0 && !slices.Contains(allowed, category):
		return "", fmt.Errorf("%w %q: site.yml allows %s", services.ErrUnknownCategory, category, strings.Join(allowed, ", "))
	}

	fm := services.NewArticleFrontMatter(title, category, author, now)
	slug, _ := fm["slug"].(string)
	if slug == "" {
		return "", fmt.Errorf("title %q has no usable characters for a slug", title)
	}

	body := "<p>" + strings.TrimSpace(title) + "</p>"
	data, err := services.ConstructFileContent(fm, body, format)
	if err != nil {
		return "", err
	}

	path := filepath.Join(dir, slug+".md")
	if _, err := os.Stat(path); err == nil {
		return "", fmt.Errorf("%s: %w", path, os.ErrExist)
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", err
	}
	return path, nil
}
