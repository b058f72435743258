package entity

// UnitAlias maps a free-text packaging synonym ("caixa", "lata", "pack")
// to its canonical unit code.
type UnitAlias struct {
	Alias  string
	Unit   string
	Active bool
}
