package store

import "fjacquet/md-expense-csv/internal/vendor"

// MockRuleStore is a RuleLoader for tests.
type MockRuleStore struct {
	Specs         []vendor.RuleSpec
	NoisePrefixes []string

	LoadRulesError error
}

// LoadRules compiles the mock specs, or returns the built-in table when no
// specs are set.
func (m *MockRuleStore) LoadRules() (RuleTable, error) {
	if m.LoadRulesError != nil {
		return RuleTable{}, m.LoadRulesError
	}
	if len(m.Specs) == 0 {
		return DefaultRuleTable(), nil
	}

	rules, err := vendor.CompileRules(m.Specs)
	if err != nil {
		return RuleTable{}, err
	}
	return RuleTable{
		Specs:         m.Specs,
		Rules:         rules,
		NoisePrefixes: m.NoisePrefixes,
		Source:        "mock",
	}, nil
}
