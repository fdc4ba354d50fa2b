// Package locales carries the localized display names default folders may
// have been renamed to. The table is best-effort configuration data, never
// authoritative; the resolver consults it only as a last resort when the
// server has no distinguished folder for a type.
package locales

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/quillmail/ewsbox/pkg/models/folder"
)

// Lookup supplies acceptable display names per locale and folder type.
// Pluggable so deployments can supply their own tables without touching
// resolver control flow.
type Lookup interface {
	Names(locale string, t folder.WellKnownType) []string
}

// Table is a static Lookup backed by a map keyed by locale tag.
type Table map[string]map[folder.WellKnownType][]string

// Names returns the acceptable display names for a type under a locale, or
// nil when the table has no entry.
func (t Table) Names(locale string, typ folder.WellKnownType) []string {
	byType, ok := t[locale]
	if !ok {
		return nil
	}
	return byType[typ]
}

// TitleCase normalizes a display name to title form before comparison against
// table entries, so capitalization differences on the server never defeat a
// match.
func TitleCase(name string) string {
	return cases.Title(language.Und).String(name)
}

// Default returns the built-in table. Neither complete nor authoritative.
func Default() Table {
	return Table{
		"en_US": {
			folder.Calendar:     {"Calendar"},
			folder.DeletedItems: {"Deleted Items"},
			folder.Drafts:       {"Drafts"},
			folder.Inbox:        {"Inbox"},
			folder.Outbox:       {"Outbox"},
			folder.SentItems:    {"Sent Items"},
			folder.JunkEmail:    {"Junk Email", "Junk E-Mail"},
			folder.Tasks:        {"Tasks"},
			folder.Contacts:     {"Contacts"},
		},
		"da_DK": {
			folder.Calendar:     {"Kalender"},
			folder.DeletedItems: {"Slettet Post"},
			folder.Drafts:       {"Kladder"},
			folder.Inbox:        {"Indbakke"},
			folder.Outbox:       {"Udbakke"},
			folder.SentItems:    {"Sendt Post"},
			folder.JunkEmail:    {"Uønsket E-Mail", "Uønsket Post"},
			folder.Tasks:        {"Opgaver"},
			folder.Contacts:     {"Kontaktpersoner", "Kontakter"},
		},
		"de_DE": {
			folder.Calendar:     {"Kalender"},
			folder.DeletedItems: {"Gelöschte Elemente"},
			folder.Drafts:       {"Entwürfe"},
			folder.Inbox:        {"Posteingang"},
			folder.Outbox:       {"Postausgang"},
			folder.SentItems:    {"Gesendete Elemente"},
			folder.JunkEmail:    {"Junk-E-Mail"},
			folder.Tasks:        {"Aufgaben"},
			folder.Contacts:     {"Kontakte"},
		},
	}
}
