package config

import "sync"

// RuleSet is the process-wide, replaceable holder of the validation rules.
// Operations take one snapshot with Get and use it throughout.
type RuleSet struct {
	mutex sync.RWMutex
	rules RulesConfig
}

// NewRuleSet creates a rule set after validating the initial rules
func NewRuleSet(rules RulesConfig) (*RuleSet, error) {
	if err := rules.Validate(); err != nil {
		return nil, err
	}
	return &RuleSet{rules: rules}, nil
}

// Get returns a snapshot of the current rules
func (rs *RuleSet) Get() RulesConfig {
	rs.mutex.RLock()
	defer rs.mutex.RUnlock()
	return rs.rules
}

// Set replaces the rules; invalid rules are rejected
func (rs *RuleSet) Set(rules RulesConfig) error {
	if err := rules.Validate(); err != nil {
		return err
	}
	rs.mutex.Lock()
	defer rs.mutex.Unlock()
	rs.rules = rules
	return nil
}
