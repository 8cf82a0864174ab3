// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package columnspec

// ConflictKind discriminates the ConflictPolicy variants.
type ConflictKind int

const (
	// ConflictNone issues a plain INSERT; a primary-key clash is fatal.
	ConflictNone ConflictKind = iota
	// ConflictDoNothing skips conflicting rows (ON CONFLICT ... DO NOTHING).
	ConflictDoNothing
	// ConflictDoUpdate updates UpdateColumns to their excluded values on
	// conflict (ON CONFLICT ... DO UPDATE SET ...).
	ConflictDoUpdate
)

// TargetKind discriminates how an ON CONFLICT target is resolved.
type TargetKind int

const (
	// TargetPrimaryKeyAuto resolves the conflict target from the table's
	// primary key at execution time, via metadata read by the reflector.
	TargetPrimaryKeyAuto TargetKind = iota
	// TargetExplicitColumns names the conflict target columns directly.
	TargetExplicitColumns
	// TargetNamedConstraint names the conflict target by constraint name.
	TargetNamedConstraint
)

// ConflictTarget names what ON CONFLICT matches against.
type ConflictTarget struct {
	Kind           TargetKind
	Columns        []string
	ConstraintName string
}

// PrimaryKeyAuto defers conflict-target resolution to the copier, which
// looks up the table's primary key from reflected metadata.
func PrimaryKeyAuto() ConflictTarget {
	return ConflictTarget{Kind: TargetPrimaryKeyAuto}
}

// ExplicitColumns names the conflict target columns directly.
func ExplicitColumns(columns ...string) ConflictTarget {
	return ConflictTarget{Kind: TargetExplicitColumns, Columns: columns}
}

// NamedConstraint names the conflict target by constraint name.
func NamedConstraint(name string) ConflictTarget {
	return ConflictTarget{Kind: TargetNamedConstraint, ConstraintName: name}
}

// ConflictPolicy describes how the copier's INSERT reacts to a conflict
// on the target table.
type ConflictPolicy struct {
	Kind          ConflictKind
	Target        ConflictTarget
	UpdateColumns []string
}

// NoConflictHandling is the default policy: a plain INSERT.
func NoConflictHandling() ConflictPolicy {
	return ConflictPolicy{Kind: ConflictNone}
}

// DoNothing skips rows that conflict against target.
func DoNothing(target ConflictTarget) ConflictPolicy {
	return ConflictPolicy{Kind: ConflictDoNothing, Target: target}
}

// DoUpdate updates updateColumns to their excluded values for rows that
// conflict against target.
func DoUpdate(target ConflictTarget, updateColumns []string) ConflictPolicy {
	return ConflictPolicy{Kind: ConflictDoUpdate, Target: target, UpdateColumns: updateColumns}
}
