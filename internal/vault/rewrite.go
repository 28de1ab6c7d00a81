package vault

import (
	"os"
	"regexp"
	"strings"
)

// replaceWikiLinkTargets replaces wiki link targets matching oldName with newName.
// Handles: [[old]], [[old.md]], [[old#section]], [[old|alias]], [[old#section|alias]],
// [[old.md#section]], [[old.md|alias]], [[old.md#section|alias]].
func replaceWikiLinkTargets(content, oldName, newName string) string {
	// Match [[oldName]] with optional .md, #section, and |alias
	// The pattern captures: [[ + oldName + optional .md + optional #section + optional |alias + ]]
	escaped := regexp.QuoteMeta(oldName)
	pattern := `\[\[` + escaped + `(\.md)?([#|][^\]]*?)?\]\]`
	re := regexp.MustCompile(pattern)

	return re.ReplaceAllStringFunc(content, func(match string) string {
		// Strip [[ and ]], then swap the target while preserving the
		// suffix (.md, #section, |alias).
		inner := match[2 : len(match)-2]
		rest := inner[len(oldName):]

		result := newName
		if strings.HasPrefix(rest, ".md") {
			result += ".md"
			rest = rest[3:]
		}
		result += rest

		return "[[" + result + "]]"
	})
}

// RewriteLinksInNote reads a note file, replaces wiki link targets from oldName
// to newName, and writes it back if any changes were made.
// Returns true if the file was modified.
func RewriteLinksInNote(absPath, oldName, newName string) (bool, error) {
	data, err := os.ReadFile(absPath)
	if err != nil {
		return false, err
	}

	original := string(data)
	updated := replaceWikiLinkTargets(original, oldName, newName)

	if updated == original {
		return false, nil
	}

	if err := os.WriteFile(absPath, []byte(updated), 0644); err != nil {
		return false, err
	}

	return true, nil
}
