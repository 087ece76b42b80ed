package migrations

import (
	"context"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
)

// Migration is one SQL file split into executable statements.
type Migration struct {
	Name       string
	Statements []string
}

// Load reads the *.sql files under dir in lexical order.
// Files with no statements are skipped.
func Load(fsys fs.FS, dir string) ([]Migration, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("read migrations %s: %w", dir, err)
	}

	var files []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".sql") {
			files = append(files, entry.Name())
		}
	}
	sort.Strings(files)

	migrations := make([]Migration, 0, len(files))
	for _, file := range files {
		data, err := fs.ReadFile(fsys, path.Join(dir, file))
		if err != nil {
			return nil, fmt.Errorf("read migration %s: %w", file, err)
		}
		if err := validateNoSemicolonInStrings(string(data)); err != nil {
			return nil, fmt.Errorf("validate migration %s: %w", file, err)
		}
		stmts := splitStatements(string(data))
		if len(stmts) == 0 {
			continue
		}
		migrations = append(migrations, Migration{Name: file, Statements: stmts})
	}
	return migrations, nil
}

// ledger records which migrations a database has already applied.
type ledger interface {
	applied(ctx context.Context) (map[string]bool, error)
	apply(ctx context.Context, m Migration) error
}

// run applies every migration the ledger has not recorded yet and returns
// the names of those it applied.
func run(ctx context.Context, l ledger, migrations []Migration) ([]string, error) {
	done, err := l.applied(ctx)
	if err != nil {
		return nil, fmt.Errorf("read applied migrations: %w", err)
	}

	var names []string
	for _, m := range migrations {
		if done[m.Name] {
			continue
		}
		if err := l.apply(ctx, m); err != nil {
			return names, fmt.Errorf("apply migration %s: %w", m.Name, err)
		}
		names = append(names, m.Name)
	}
	return names, nil
}

// splitStatements splits SQL content into statements on semicolons after
// dropping blank lines and full-line -- comments.
//
// The splitter does not understand semicolons inside string literals,
// block comments or dollar-quoted bodies. Load rejects files with
// semicolons inside string literals; the others must not be used.
func splitStatements(input string) []string {
	var filtered []string
	for _, line := range strings.Split(input, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "--") {
			continue
		}
		filtered = append(filtered, line)
	}
	joined := strings.Join(filtered, "\n")

	var stmts []string
	for _, part := range strings.Split(joined, ";") {
		stmt := strings.TrimSpace(part)
		if stmt != "" {
			stmts = append(stmts, stmt)
		}
	}
	return stmts
}

// validateNoSemicolonInStrings rejects SQL with a semicolon inside a
// single-quoted literal.
func validateNoSemicolonInStrings(sql string) error {
	inString := false
	for i := 0; i < len(sql); i++ {
		ch := sql[i]
		if ch == '\'' {
			// '' is an escaped quote
			if inString && i+1 < len(sql) && sql[i+1] == '\'' {
				i++
				continue
			}
			inString = !inString
		} else if ch == ';' && inString {
			return fmt.Errorf("semicolon inside string literal at byte %d", i)
		}
	}
	if inString {
		return fmt.Errorf("unterminated string literal")
	}
	return nil
}
