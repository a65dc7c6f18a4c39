package model

// Strategy describes how one catalog object kind turns an old/new pair into
// alteration DDL. Drop, Add and Equal are mandatory; Rename is nil for kinds
// whose engine has no rename grammar, and Comment is nil for kinds whose
// comment travels inline with the create clause.
type Strategy[T Object] struct {
	// Equal reports whether everything except the name is unchanged.
	Equal func(cur, old T) bool
	// Rename renders a rename statement from the old name to the new one.
	Rename func(cur, old T) string
	// Drop renders the statement or clause removing the old object.
	Drop func(old T) string
	// Add renders the statement or clause creating the new object.
	Add func(cur T) string
	// Comment renders the standalone comment statement when the comments
	// differ. The second result is false when nothing changed.
	Comment func(cur, old T) (string, bool)
}

// Alter applies the uniform diff policy to a matched pair: a rename when the
// kind supports one and the name changed, drop-then-recreate when the
// structural content changed, and a trailing standalone comment statement
// when the comment channel applies. A pair with nothing changed yields no
// statements and an empty comment.
func Alter[T Object](s Strategy[T], cur, old T) (stmts []string, comment string) {
	renamed := cur.ObjectName() != old.ObjectName()
	changed := !s.Equal(cur, old)

	if renamed && s.Rename != nil {
		stmts = append(stmts, s.Rename(cur, old))
	}
	if changed || (renamed && s.Rename == nil) {
		// When a rename was already emitted the old name is gone, so the
		// recreate pair degrades to a bare add.
		if !renamed || s.Rename == nil {
			stmts = append(stmts, s.Drop(old))
		}
		stmts = append(stmts, s.Add(cur))
	}
	if s.Comment != nil {
		if c, ok := s.Comment(cur, old); ok {
			comment = c
		}
	}
	return stmts, comment
}
