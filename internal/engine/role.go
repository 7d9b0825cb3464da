package engine

import (
	"strings"

	"github.com/TheTurningPointBen/turning-point-app-sub000/internal/model"
)

// NormalizeRole canonicalizes a stored role label. Legacy rows carry
// variants like "Both (Reader & Scribe)"; any label containing "both"
// collapses to RoleBoth. Other known labels are matched case-insensitively.
// Unknown labels are returned trimmed and will simply never match.
func NormalizeRole(r model.TutorRole) model.TutorRole {
	s := strings.TrimSpace(string(r))
	lower := strings.ToLower(s)

	if strings.Contains(lower, "both") {
		return model.RoleBoth
	}

	switch lower {
	case "reader":
		return model.RoleReader
	case "scribe":
		return model.RoleScribe
	case "invigilator":
		return model.RoleInvigilator
	case "prompter":
		return model.RolePrompter
	case "all of the above", "alloftheabove":
		return model.RoleAllOfTheAbove
	}

	return model.TutorRole(s)
}

// RoleMatches reports whether a tutor's declared capability satisfies a
// booking's required role. The lattice is one-directional: "All of the
// Above" satisfies everything, "Both" satisfies Reader and Scribe only.
func RoleMatches(tutorRole, requiredRole model.TutorRole) bool {
	tr := NormalizeRole(tutorRole)
	req := NormalizeRole(requiredRole)

	if tr == req {
		return true
	}
	if tr == model.RoleAllOfTheAbove {
		return true
	}
	if tr == model.RoleBoth && (req == model.RoleReader || req == model.RoleScribe) {
		return true
	}
	return false
}
