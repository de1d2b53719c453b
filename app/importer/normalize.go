package importer

import (
	"fmt"
	"strings"

	"github.com/milavdabgar/npni-flutter/app/models"
)

// FieldSpec describes how one canonical project field is located in the
// uploaded CSV: an ordered list of accepted header spellings and the value
// substituted when none of them carry data.
type FieldSpec struct {
	Aliases []string
	Default string
}

// Schema is the injectable header-mapping configuration for the
// normalizer. The registration form's column names are long, human-authored
// and have drifted between dataset revisions; a new revision is a schema
// change, not a code change.
type Schema struct {
	TeamIDPrefix     string
	Title            FieldSpec
	Description      FieldSpec
	PresentationType FieldSpec
	Institution      FieldSpec
	Semester         FieldSpec
	Branch           FieldSpec
	MentorName       FieldSpec
	ContactNumber    FieldSpec
	// TeamMembers holds one spec per member column, read in order.
	TeamMembers []FieldSpec
}

// DefaultSchema returns the schema for the registration-form export this
// fair actually receives. The alias lists carry the form's authored
// headers (header cells are whitespace-trimmed by the parser, internal
// spacing is preserved) followed by the short names used by
// hand-maintained sheets.
func DefaultSchema(prefix string) Schema {
	member := func(ordinal string) FieldSpec {
		return FieldSpec{Aliases: []string{
			ordinal + " Team Member Name  (For Certificate Printing)",
			ordinal + " Team Member Name (For Certificate Printing)",
			ordinal + " Team Member Name",
		}}
	}
	return Schema{
		TeamIDPrefix: prefix,
		Title: FieldSpec{
			Aliases: []string{"Project Title", "title"},
			Default: "Untitled Project",
		},
		Description: FieldSpec{
			Aliases: []string{"Write about your Idea/project", "description"},
			Default: "No description provided",
		},
		PresentationType: FieldSpec{
			Aliases: []string{"Demo Model  / Poster", "Demo Model / Poster", "presentationType"},
			Default: "Model",
		},
		Institution: FieldSpec{
			Aliases: []string{"School / college", "institution"},
			Default: "Unknown Institution",
		},
		Semester: FieldSpec{
			Aliases: []string{"Select Semester", "semester"},
			Default: "Unknown Semester",
		},
		Branch: FieldSpec{
			Aliases: []string{"Select Branch", "branch"},
			Default: "Unknown Branch",
		},
		MentorName: FieldSpec{
			Aliases: []string{"Faculty Mentor Name", "mentorName"},
			Default: "Unknown Mentor",
		},
		ContactNumber: FieldSpec{
			Aliases: []string{"Mobile number any one team member", "contactNumber"},
			Default: "No contact provided",
		},
		TeamMembers: []FieldSpec{
			member("First"), member("Second"), member("Third"),
			member("Forth"), member("Fifth"),
		},
	}
}

// lookup returns the first non-empty value among the spec's aliases, or
// (default, false) when none carry data.
func (s FieldSpec) lookup(row *Row) (string, bool) {
	for _, alias := range s.Aliases {
		if v := row.Get(alias); v != "" {
			return v, true
		}
	}
	return s.Default, false
}

// validMemberName filters the junk the registration form collects in
// unused member slots: blanks, whitespace and the literal "na".
func validMemberName(v string) bool {
	v = strings.TrimSpace(v)
	return v != "" && !strings.EqualFold(v, "na")
}

// Normalize maps one raw CSV row onto a candidate project. The team ID is
// synthesized from the row's position alone, so re-importing the same file
// reproduces the same IDs. Missing fields degrade to their defaults — a
// partially filled registration is still worth importing — and the row
// fails only when not a single field maps.
func (s Schema) Normalize(row *Row) (*models.Project, error) {
	matched := 0
	take := func(spec FieldSpec) string {
		v, ok := spec.lookup(row)
		if ok {
			matched++
		}
		return v
	}

	project := &models.Project{
		TeamID:           fmt.Sprintf("%s-%03d", s.TeamIDPrefix, row.Position),
		Title:            take(s.Title),
		Description:      take(s.Description),
		PresentationType: take(s.PresentationType),
		Institution:      take(s.Institution),
		Semester:         take(s.Semester),
		Branch:           take(s.Branch),
		MentorName:       take(s.MentorName),
		ContactNumber:    take(s.ContactNumber),
		TeamMembers:      []string{},
	}

	for _, spec := range s.TeamMembers {
		v, ok := spec.lookup(row)
		if !ok {
			continue
		}
		matched++
		if validMemberName(v) {
			project.TeamMembers = append(project.TeamMembers, strings.TrimSpace(v))
		}
	}

	if matched == 0 {
		return nil, &RowError{Row: row.Position, Msg: "no recognizable columns"}
	}
	return project, nil
}
