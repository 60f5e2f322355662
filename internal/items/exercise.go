package items

import (
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/goliatone/go-amplitude/internal/compileerrors"
	"github.com/goliatone/go-amplitude/internal/ids"
	"github.com/goliatone/go-amplitude/internal/index"
	"github.com/goliatone/go-amplitude/internal/markdown"
	"github.com/goliatone/go-amplitude/internal/runner"
	"github.com/goliatone/go-amplitude/internal/validation"
)

type exerciseConfig struct {
	Title     string                             `toml:"title"`
	Functions map[string]index.FunctionSignature `toml:"functions"`
}

// sourceFile is one file of an exercise src/ directory.
type sourceFile struct {
	name string
	stem string
	lang runner.Language
}

func (r *Resolver) resolveExercise(contents Contents, id ids.ID, b *index.Builder) (Item, error) {
	dir := contents.Dir()
	files, err := checkExerciseLayout(contents, id)
	if err != nil {
		return nil, err
	}

	key := id.Key()
	if err := b.Reserve(key, id.String()); err != nil {
		return nil, err
	}
	exercise, err := r.linkExercise(dir, id, files, b)
	if err != nil {
		b.Release(key)
		return nil, err
	}
	return Exercise{base: base{id: id, dir: dir}, Exercise: exercise}, nil
}

// checkExerciseLayout verifies the directory schema before any file is
// parsed, so layout problems are reported even when configs are also broken.
func checkExerciseLayout(contents Contents, id ids.ID) ([]sourceFile, error) {
	dir := contents.Dir()
	if !contents.HasFile(instructionsFile) {
		return nil, missing(dir, instructionsFile, "instructions")
	}
	if !contents.HasFile(configFile) {
		return nil, missing(dir, configFile, "exercise config")
	}
	if !contents.HasDir(sourceDir) {
		return nil, missing(dir, sourceDir+"/", "source directory")
	}
	if err := unexpected(dir, contents.Unexpected(instructionsFile, configFile, sourceDir)); err != nil {
		return nil, err
	}

	srcDir := filepath.Join(dir, sourceDir)
	src, err := ReadContents(srcDir)
	if err != nil {
		return nil, err
	}
	if nested := src.Dirs(); len(nested) > 0 {
		return nil, unexpected(srcDir, nested)
	}

	files := make([]sourceFile, 0, len(src.Files()))
	generators := map[runner.Language]bool{}
	starters := 0
	leaf := id.Leaf()

	for _, name := range src.Files() {
		ext := strings.TrimPrefix(filepath.Ext(name), ".")
		lang, ok := runner.FromExtension(ext)
		if !ok {
			return nil, compileerrors.UnsupportedLanguage(filepath.Join(srcDir, name), ext)
		}
		file := sourceFile{name: name, stem: strings.TrimSuffix(name, filepath.Ext(name)), lang: lang}
		switch file.stem {
		case leaf:
			starters++
		case generatorName:
			generators[lang] = true
		}
		files = append(files, file)
	}

	if starters == 0 {
		return nil, missing(srcDir, leaf+".<ext>", "starter code")
	}
	for _, file := range files {
		if file.stem == leaf && !generators[file.lang] {
			return nil, missing(srcDir, generatorName+"."+file.lang.Extension(), "test case generator")
		}
	}
	return files, nil
}

func (r *Resolver) linkExercise(dir string, id ids.ID, files []sourceFile, b *index.Builder) (index.Exercise, error) {
	config, err := readExerciseConfig(dir)
	if err != nil {
		return index.Exercise{}, err
	}

	key := id.Key()
	code := make(map[runner.Language]string)
	for _, file := range files {
		if file.stem != id.Leaf() {
			continue
		}
		source, err := readFile(filepath.Join(dir, sourceDir), file.name)
		if err != nil {
			return index.Exercise{}, err
		}
		code[file.lang] = string(source)
	}

	instructions, err := readFile(dir, instructionsFile)
	if err != nil {
		return index.Exercise{}, err
	}
	scope := index.NewScope(key)
	html, err := r.pipeline.Render(instructions, scope)
	if err != nil {
		return index.Exercise{}, err
	}

	exercise := index.Exercise{
		ID:           key,
		Path:         id.String(),
		Title:        config.Title,
		Instructions: string(html),
		Functions:    config.Functions,
		Code:         code,
	}
	b.CommitExercise(scope, exercise)
	return exercise, nil
}

func readExerciseConfig(dir string) (exerciseConfig, error) {
	source, err := readFile(dir, configFile)
	if err != nil {
		return exerciseConfig{}, err
	}

	var raw map[string]any
	if err := toml.Unmarshal(source, &raw); err != nil {
		return exerciseConfig{}, compileerrors.ConfigDeserialization(configFile, err)
	}
	if err := validation.ValidateExerciseConfig(raw); err != nil {
		return exerciseConfig{}, classifySchemaError(err)
	}

	var config exerciseConfig
	if err := markdown.DecodeStrictTOML(source, &config); err != nil {
		return exerciseConfig{}, compileerrors.ConfigDeserialization(configFile, err)
	}

	names := make([]string, 0, len(config.Functions))
	for name := range config.Functions {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		signature := config.Functions[name]
		for i, input := range signature.Inputs {
			if _, err := runner.ParseVarType(input); err != nil {
				return exerciseConfig{}, compileerrors.InvalidSignature(name, fmt.Sprintf("input %d: %v", i, err))
			}
		}
		if _, err := runner.ParseVarType(signature.Output); err != nil {
			return exerciseConfig{}, compileerrors.InvalidSignature(name, fmt.Sprintf("output: %v", err))
		}
	}
	return config, nil
}

// classifySchemaError reports problems inside a function declaration as
// signature errors and everything else as a config error.
func classifySchemaError(err error) error {
	if !errors.Is(err, validation.ErrSchemaValidation) {
		return compileerrors.ConfigDeserialization(configFile, err)
	}
	for _, issue := range validation.Issues(err) {
		if strings.HasPrefix(issue.Location, "/functions") {
			function := strings.Split(strings.TrimPrefix(issue.Location, "/functions/"), "/")[0]
			if function == "" || function == "/functions" {
				function = "<functions>"
			}
			return compileerrors.InvalidSignature(function, err.Error())
		}
	}
	return compileerrors.ConfigDeserialization(configFile, err)
}
