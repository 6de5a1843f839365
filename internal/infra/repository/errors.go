package repository

import (
	"visit-scheduler/internal/infra"
	"visit-scheduler/internal/pkg/pgconv"
)

// classifyWriteErr turns constraint violations into typed repository errors
// so the usecase layer can tell a lost race from a broken database.
func classifyWriteErr(msg string, err error) error {
	if constraint, ok := pgconv.IsUniqueViolation(err); ok {
		return infra.WrapConstraintErr(msg, err, infra.KindDuplicateKey, constraint)
	}
	if constraint, ok := pgconv.IsExclusionViolation(err); ok {
		return infra.WrapConstraintErr(msg, err, infra.KindConflict, constraint)
	}
	if pgconv.IsForeignKeyViolation(err) {
		return infra.WrapRepoErr(msg, err, infra.KindNotFound)
	}
	return infra.WrapRepoErr(msg, err)
}

func statusStrings[S ~string](statuses []S) []string {
	if len(statuses) == 0 {
		return nil
	}
	out := make([]string, len(statuses))
	for i, s := range statuses {
		out[i] = string(s)
	}
	return out
}
