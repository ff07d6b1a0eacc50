package rules

// Family is a named group of rules, used for listings and selective proof
// configurations.
type Family struct {
	Name  string
	Rules []Rule
}

// Families returns the seven rule families in catalogue order.
func Families() []Family {
	return []Family{
		{Name: "propositional", Rules: PropositionalRules()},
		{Name: "modal", Rules: ModalRules()},
		{Name: "temporal", Rules: TemporalRules()},
		{Name: "deontic", Rules: DeonticRules()},
		{Name: "cognitive", Rules: CognitiveRules()},
		{Name: "resolution", Rules: ResolutionRules()},
		{Name: "specialized", Rules: SpecializedRules()},
	}
}

// Catalog returns every rule across all families.
func Catalog() []Rule {
	var all []Rule
	for _, fam := range Families() {
		all = append(all, fam.Rules...)
	}
	return all
}

// ByName finds a rule by its Name.
func ByName(name string) (Rule, bool) {
	for _, r := range Catalog() {
		if r.Name() == name {
			return r, true
		}
	}
	return nil, false
}
