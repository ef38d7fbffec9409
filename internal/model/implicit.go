package model

import "slices"

// implicitRule pairs an implicit advice with the advices that cancel it.
type implicitRule struct {
	advice      Advice
	cancelledBy []Advice
}

// implicitRules is ordered; ImplicitAdvicesAnd appends in this order.
var implicitRules = []implicitRule{
	{advice: Index, cancelledBy: []Advice{NoIndex, None}},
	{advice: Follow, cancelledBy: []Advice{NoFollow, None}},
}

// ImplicitAdvices returns the implicit advices in declaration order.
func ImplicitAdvices() []Advice {
	advices := make([]Advice, len(implicitRules))
	for i, rule := range implicitRules {
		advices[i] = rule.advice
	}
	return advices
}

// CancellingAdvices returns the advices that cancel the implicit advice a.
// It returns nil when a is not implicit.
func CancellingAdvices(a Advice) []Advice {
	for _, rule := range implicitRules {
		if rule.advice == a {
			return slices.Clone(rule.cancelledBy)
		}
	}
	return nil
}

// ImplicitAdvicesAnd returns advices followed by every implicit advice that
// applies to them.
//
// An implicit advice applies unless an advice with the same label, or with
// one of its cancelling labels, is already present. Implicit advices appended
// earlier in the same call count as present. The input slice is not
// modified, and calling ImplicitAdvicesAnd on its own result adds nothing.
func ImplicitAdvicesAnd(advices []Advice) []Advice {
	result := make([]Advice, len(advices), len(advices)+len(implicitRules))
	copy(result, advices)

	for _, rule := range implicitRules {
		if canAddImplicitAdvice(rule, result) {
			result = append(result, rule.advice)
		}
	}
	return result
}

func canAddImplicitAdvice(rule implicitRule, present []Advice) bool {
	for _, a := range present {
		if a == rule.advice || slices.Contains(rule.cancelledBy, a) {
			return false
		}
	}
	return true
}
