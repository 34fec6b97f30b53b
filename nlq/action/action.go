// Package action resolves the action identifier the execution layer
// dispatches on.
package action

import "github.com/teranos/contractq/nlq/types"

type rule struct {
	attrs  []types.Attr
	action string
}

// contractRules is evaluated top-down; the first rule with any of its
// attributes present wins. A customer number outranks a contract number.
var contractRules = []rule{
	{[]types.Attr{types.AttrCustomerNumber}, types.ActionContractsByCustomerNumber},
	{[]types.Attr{types.AttrContractNumber}, types.ActionContractsByContractNumber},
	{[]types.Attr{types.AttrPartNumber}, types.ActionPartsByPartNumber},
	{[]types.Attr{types.AttrCustomerName}, types.ActionContractsByCustomerName},
	{[]types.Attr{types.AttrCreatedBy}, types.ActionContractsByCreatedBy},
	{types.TemporalAttrs, types.ActionContractsByDates},
}

var partRules = []rule{
	{[]types.Attr{types.AttrCreatedBy}, types.ActionPartsByUser},
	{[]types.Attr{types.AttrContractNumber}, types.ActionPartsByContract},
	{[]types.Attr{types.AttrPartNumber}, types.ActionPartsByPartNumber},
	{[]types.Attr{types.AttrCustomerNumber, types.AttrCustomerName}, types.ActionPartsByCustomer},
}

var helpActions = map[types.Intent]string{
	types.IntentHelpCreateContract:    types.ActionHelpCreateContract,
	types.IntentStepsCreateContract:   types.ActionHelpContractSteps,
	types.IntentHelpCreateContractBot: types.ActionHelpCreateContractBot,
	types.IntentHelpGeneral:           types.ActionHelpGeneral,
}

// Resolve returns the action for a classified clause. merged is set while
// classifying a clause of a multi-intent query, where creator lookups use
// the generic user action.
func Resolve(domain types.Domain, in types.Intent, e *types.Entities, merged bool) string {
	switch domain {
	case types.DomainError:
		return types.ActionErrorHandling
	case types.DomainMultiIntent:
		return types.ActionContractsByFilter
	case types.DomainHelp:
		if a, ok := helpActions[in]; ok {
			return a
		}
		return types.ActionHelpGeneral
	case types.DomainParts:
		if a, ok := match(partRules, e); ok {
			return a
		}
		return types.ActionPartsByContract
	}

	a, ok := match(contractRules, e)
	if !ok {
		return Default(in)
	}
	if merged && a == types.ActionContractsByCreatedBy {
		return types.ActionContractsByUser
	}
	return a
}

// Default is the action for an intent when no entity decides
func Default(in types.Intent) string {
	if a, ok := helpActions[in]; ok {
		return a
	}
	switch in {
	case types.IntentPartsWithContract, types.IntentPartsAnalysis, types.IntentPartsLookup:
		return types.ActionPartsByContract
	case types.IntentError:
		return types.ActionErrorHandling
	}
	return types.ActionContractsByFilter
}

func match(rules []rule, e *types.Entities) (string, bool) {
	for _, r := range rules {
		if e.HasAny(r.attrs...) {
			return r.action, true
		}
	}
	return "", false
}
