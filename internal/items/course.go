package items

import (
	"context"
	"fmt"

	"github.com/goliatone/go-amplitude/internal/compileerrors"
	"github.com/goliatone/go-amplitude/internal/ids"
	"github.com/goliatone/go-amplitude/internal/index"
	"github.com/goliatone/go-amplitude/internal/logging"
	"github.com/goliatone/go-amplitude/internal/markdown"
)

// resolveCourse validates the course directory itself, then resolves its
// children. A course that fails its own checks is not descended into.
func (r *Resolver) resolveCourse(ctx context.Context, contents Contents, id ids.ID, b *index.Builder) (Item, error) {
	dir := contents.Dir()
	course, err := readCourse(contents, id)
	if err != nil {
		return nil, itemError(id, err)
	}

	key := id.Key()
	if err := b.Reserve(key, id.String()); err != nil {
		return nil, itemError(id, err)
	}

	children, err := r.resolveChildren(ctx, dir, id, contents.Dirs(), b)
	if err != nil {
		return nil, err
	}

	for _, child := range children {
		course.Children = append(course.Children, index.CourseEntry{Kind: child.Kind(), ID: child.ID().Key()})
	}
	b.CommitCourse(course)

	logging.WithItemContext(r.logger, id.String(), dir, string(index.KindCourse)).
		Debug("course resolved", "children", len(children))
	return Course{base: base{id: id, dir: dir}, Course: course, Children: children}, nil
}

func readCourse(contents Contents, id ids.ID) (index.Course, error) {
	dir := contents.Dir()
	if len(contents.Dirs()) == 0 {
		return index.Course{}, compileerrors.SchemaViolation(dir,
			fmt.Sprintf("could not classify directory: expected `%s`, `%s`, an exercise or at least one child item", articleFile, quizFile))
	}
	if err := unexpected(dir, filesOtherThan(contents, courseFile)); err != nil {
		return index.Course{}, err
	}

	course := index.Course{
		ID:    id.Key(),
		Path:  id.String(),
		Title: id.Leaf(),
	}
	if !contents.HasFile(courseFile) {
		return course, nil
	}

	source, err := readFile(dir, courseFile)
	if err != nil {
		return index.Course{}, err
	}
	var header struct {
		Title       string `toml:"title"`
		Description string `toml:"description"`
	}
	if err := markdown.DecodeStrictTOML(source, &header); err != nil {
		return index.Course{}, compileerrors.ConfigDeserialization(courseFile, err)
	}
	if header.Title != "" {
		course.Title = header.Title
	}
	course.Description = header.Description
	return course, nil
}

func filesOtherThan(contents Contents, allowed string) []string {
	var out []string
	for _, name := range contents.Files() {
		if name != allowed {
			out = append(out, name)
		}
	}
	return out
}
