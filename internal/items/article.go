package items

import (
	"github.com/goliatone/go-amplitude/internal/compileerrors"
	"github.com/goliatone/go-amplitude/internal/ids"
	"github.com/goliatone/go-amplitude/internal/index"
	"github.com/goliatone/go-amplitude/internal/markdown"
)

func (r *Resolver) resolveArticle(contents Contents, id ids.ID, b *index.Builder) (Item, error) {
	dir := contents.Dir()
	if !contents.HasFile(articleFile) {
		return nil, missing(dir, articleFile, "article")
	}
	if err := unexpected(dir, contents.Unexpected(articleFile)); err != nil {
		return nil, err
	}

	key := id.Key()
	if err := b.Reserve(key, id.String()); err != nil {
		return nil, err
	}
	item, err := r.compileArticle(dir, id, b)
	if err != nil {
		b.Release(key)
		return nil, err
	}
	return item, nil
}

func (r *Resolver) compileArticle(dir string, id ids.ID, b *index.Builder) (Item, error) {
	source, err := readFile(dir, articleFile)
	if err != nil {
		return nil, err
	}

	var config index.ArticleConfig
	body, err := markdown.SplitFrontMatter(articleFile, source, &config)
	if err != nil {
		return nil, err
	}
	if err := config.Validate(); err != nil {
		return nil, compileerrors.ConfigDeserialization(articleFile+" frontmatter", err)
	}

	key := id.Key()
	config.ID = key
	config.Path = id.String()
	if parent := id.Parent(); !parent.IsRoot() {
		config.Course = parent.Key()
	}

	scope := index.NewScope(key)
	html, err := r.pipeline.Render(body, scope)
	if err != nil {
		return nil, err
	}

	rendered, err := r.render(b, key, html)
	if err != nil {
		return nil, err
	}

	b.CommitArticle(scope, config, rendered)
	return Article{
		base:         base{id: id, dir: dir},
		Config:       config,
		RenderedPath: rendered,
	}, nil
}
