package ir

import "fmt"

// ValidationError describes a structural problem in a schema.
type ValidationError struct {
	Code    string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Validate checks the schema for structural issues and returns all problems
// found, not just the first.
func (s *Schema) Validate() []error {
	var errs []error

	seen := make(map[string]string) // name -> kind
	check := func(kind, name string) {
		if prev, ok := seen[name]; ok {
			errs = append(errs, &ValidationError{
				Code:    "duplicate_name",
				Message: fmt.Sprintf("%s %q collides with %s of the same name", kind, name, prev),
			})
			return
		}
		seen[name] = kind
	}
	for _, t := range s.Tables {
		check("table", t.Name)
	}
	for _, v := range s.Views {
		check("view", v.Name)
	}
	for _, e := range s.Enums {
		check("enum", e.Name)
	}
	for _, c := range s.Composites {
		check("composite type", c.Name)
	}

	// Dangling references inside column types.
	checkCols := func(owner string, cols []ColumnDescriptor) {
		for _, col := range cols {
			Walk(col.Type, func(t TypeDescriptor) {
				switch ref := t.(type) {
				case *EnumRefType:
					if s.FindEnum(ref.Name) == nil {
						errs = append(errs, &ValidationError{
							Code:    "dangling_enum_reference",
							Message: fmt.Sprintf("%s.%s references unknown enum %q", owner, col.Name, ref.Name),
						})
					}
				case *CompositeRefType:
					if s.FindComposite(ref.Name) == nil {
						errs = append(errs, &ValidationError{
							Code:    "dangling_composite_reference",
							Message: fmt.Sprintf("%s.%s references unknown composite type %q", owner, col.Name, ref.Name),
						})
					}
				case *RowRefType:
					// Row references resolve against views too: functions
					// returning view rows are normal generator input.
					if s.FindTable(ref.Table) == nil && s.FindView(ref.Table) == nil {
						errs = append(errs, &ValidationError{
							Code:    "dangling_row_reference",
							Message: fmt.Sprintf("%s.%s references unknown table or view %q", owner, col.Name, ref.Table),
						})
					}
				}
			})
		}
	}
	for _, t := range s.Tables {
		checkCols(t.Name, t.Row)
		checkCols(t.Name, t.Insert)
		checkCols(t.Name, t.Update)
	}
	for _, v := range s.Views {
		checkCols(v.Name, v.Row)
	}
	for _, c := range s.Composites {
		checkCols(c.Name, c.Fields)
	}
	for _, f := range s.Functions {
		checkCols(f.Name, f.Args)
		if f.Returns != nil {
			checkCols(f.Name, []ColumnDescriptor{{Name: "Returns", Type: f.Returns}})
		}
	}

	return errs
}
