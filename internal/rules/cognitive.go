package rules

import "dcec/internal/logic"

// CognitiveRules returns the attitude family. Attitudes only interact when
// held by the same agent.
func CognitiveRules() []Rule {
	return []Rule{
		BeliefDistribution{},
		KnowledgeDistribution{},
		BeliefConjunction{},
		KnowledgeConjunction{},
		KnowledgeImpliesBelief{},
		BeliefMonotonicity{},
		KnowledgeMonotonicity{},
		IntentionCommitment{},
		MeansEndReasoning{},
		PerceptionImpliesKnowledge{},
		BeliefNegation{},
		KnowledgeVeridicality{},
		IntentionPersistence{},
	}
}

func asCognitive(f logic.Formula, op logic.CognitiveOp) (*logic.Cognitive, bool) {
	c, ok := f.(*logic.Cognitive)
	if !ok || c.Op != op {
		return nil, false
	}
	return c, true
}

func hasCognitive(fs []logic.Formula, op logic.CognitiveOp) bool {
	for _, f := range fs {
		if _, ok := asCognitive(f, op); ok {
			return true
		}
	}
	return false
}

func attitude(op logic.CognitiveOp, agent logic.Term, body logic.Formula) logic.Formula {
	return &logic.Cognitive{Op: op, Agent: agent, Body: body}
}

// distributeAttitude implements the K axiom for one attitude: from
// op[a](P → Q) and op[a](P) derive op[a](Q).
func distributeAttitude(op logic.CognitiveOp, fs []logic.Formula) []logic.Formula {
	idx := index(fs)
	var out []logic.Formula
	for _, f := range fs {
		c, ok := asCognitive(f, op)
		if !ok {
			continue
		}
		p, q, isImpl := asImplication(c.Body)
		if !isImpl {
			continue
		}
		if _, present := idx[logic.Key(attitude(op, c.Agent, p))]; present {
			out = append(out, attitude(op, c.Agent, q))
		}
	}
	return out
}

// conjoinAttitude aggregates one agent's attitudes: from op[a](P) and
// op[a](Q) derive op[a](P ∧ Q).
func conjoinAttitude(op logic.CognitiveOp, fs []logic.Formula) []logic.Formula {
	var held []*logic.Cognitive
	for _, f := range fs {
		if c, ok := asCognitive(f, op); ok {
			held = append(held, c)
		}
	}
	var out []logic.Formula
	for i := 0; i < len(held); i++ {
		for j := i + 1; j < len(held); j++ {
			if !sameAgent(held[i].Agent, held[j].Agent) {
				continue
			}
			out = append(out, attitude(op, held[i].Agent, logic.And(held[i].Body, held[j].Body)))
		}
	}
	return out
}

// splitAttitude distributes one attitude over a conjunction: from
// op[a](P ∧ Q) derive op[a](P) and op[a](Q).
func splitAttitude(op logic.CognitiveOp, fs []logic.Formula) []logic.Formula {
	var out []logic.Formula
	for _, f := range fs {
		c, ok := asCognitive(f, op)
		if !ok {
			continue
		}
		if conj, isAnd := asOp(c.Body, logic.OpAnd); isAnd {
			for _, part := range conj.Operands {
				out = append(out, attitude(op, c.Agent, part))
			}
		}
	}
	return out
}

// BeliefDistribution derives B[a](Q) from B[a](P → Q) and B[a](P).
type BeliefDistribution struct{}

func (BeliefDistribution) Name() string { return "belief_distribution" }

func (BeliefDistribution) CanApply(fs []logic.Formula) bool { return hasCognitive(fs, logic.Belief) }

func (BeliefDistribution) Apply(fs []logic.Formula) ([]logic.Formula, error) {
	return distributeAttitude(logic.Belief, fs), nil
}

// KnowledgeDistribution derives K[a](Q) from K[a](P → Q) and K[a](P).
type KnowledgeDistribution struct{}

func (KnowledgeDistribution) Name() string { return "knowledge_distribution" }

func (KnowledgeDistribution) CanApply(fs []logic.Formula) bool {
	return hasCognitive(fs, logic.Knowledge)
}

func (KnowledgeDistribution) Apply(fs []logic.Formula) ([]logic.Formula, error) {
	return distributeAttitude(logic.Knowledge, fs), nil
}

// BeliefConjunction derives B[a](P ∧ Q) from B[a](P) and B[a](Q).
type BeliefConjunction struct{}

func (BeliefConjunction) Name() string { return "belief_conjunction" }

func (BeliefConjunction) CanApply(fs []logic.Formula) bool { return hasCognitive(fs, logic.Belief) }

func (BeliefConjunction) Apply(fs []logic.Formula) ([]logic.Formula, error) {
	return conjoinAttitude(logic.Belief, fs), nil
}

// KnowledgeConjunction derives K[a](P ∧ Q) from K[a](P) and K[a](Q).
type KnowledgeConjunction struct{}

func (KnowledgeConjunction) Name() string { return "knowledge_conjunction" }

func (KnowledgeConjunction) CanApply(fs []logic.Formula) bool {
	return hasCognitive(fs, logic.Knowledge)
}

func (KnowledgeConjunction) Apply(fs []logic.Formula) ([]logic.Formula, error) {
	return conjoinAttitude(logic.Knowledge, fs), nil
}

// KnowledgeImpliesBelief derives B[a](P) from K[a](P).
type KnowledgeImpliesBelief struct{}

func (KnowledgeImpliesBelief) Name() string { return "knowledge_implies_belief" }

func (KnowledgeImpliesBelief) CanApply(fs []logic.Formula) bool {
	return hasCognitive(fs, logic.Knowledge)
}

func (KnowledgeImpliesBelief) Apply(fs []logic.Formula) ([]logic.Formula, error) {
	var out []logic.Formula
	for _, f := range fs {
		if c, ok := asCognitive(f, logic.Knowledge); ok {
			out = append(out, attitude(logic.Belief, c.Agent, c.Body))
		}
	}
	return out, nil
}

// BeliefMonotonicity splits B[a](P ∧ Q) into B[a](P) and B[a](Q).
type BeliefMonotonicity struct{}

func (BeliefMonotonicity) Name() string { return "belief_monotonicity" }

func (BeliefMonotonicity) CanApply(fs []logic.Formula) bool { return hasCognitive(fs, logic.Belief) }

func (BeliefMonotonicity) Apply(fs []logic.Formula) ([]logic.Formula, error) {
	return splitAttitude(logic.Belief, fs), nil
}

// KnowledgeMonotonicity splits K[a](P ∧ Q) into K[a](P) and K[a](Q).
type KnowledgeMonotonicity struct{}

func (KnowledgeMonotonicity) Name() string { return "knowledge_monotonicity" }

func (KnowledgeMonotonicity) CanApply(fs []logic.Formula) bool {
	return hasCognitive(fs, logic.Knowledge)
}

func (KnowledgeMonotonicity) Apply(fs []logic.Formula) ([]logic.Formula, error) {
	return splitAttitude(logic.Knowledge, fs), nil
}

// IntentionCommitment derives G[a](P) from I[a](P): an intention commits the
// agent to the goal.
type IntentionCommitment struct{}

func (IntentionCommitment) Name() string { return "intention_commitment" }

func (IntentionCommitment) CanApply(fs []logic.Formula) bool {
	return hasCognitive(fs, logic.Intention)
}

func (IntentionCommitment) Apply(fs []logic.Formula) ([]logic.Formula, error) {
	var out []logic.Formula
	for _, f := range fs {
		if c, ok := asCognitive(f, logic.Intention); ok {
			out = append(out, attitude(logic.Goal, c.Agent, c.Body))
		}
	}
	return out, nil
}

// MeansEndReasoning subgoals: from G[a](Q) and B[a](P → Q) derive G[a](P).
type MeansEndReasoning struct{}

func (MeansEndReasoning) Name() string { return "means_end_reasoning" }

func (MeansEndReasoning) CanApply(fs []logic.Formula) bool {
	return hasCognitive(fs, logic.Goal) && hasCognitive(fs, logic.Belief)
}

func (MeansEndReasoning) Apply(fs []logic.Formula) ([]logic.Formula, error) {
	idx := index(fs)
	var out []logic.Formula
	for _, f := range fs {
		b, ok := asCognitive(f, logic.Belief)
		if !ok {
			continue
		}
		p, q, isImpl := asImplication(b.Body)
		if !isImpl {
			continue
		}
		if _, present := idx[logic.Key(attitude(logic.Goal, b.Agent, q))]; present {
			out = append(out, attitude(logic.Goal, b.Agent, p))
		}
	}
	return out, nil
}

// PerceptionImpliesKnowledge derives K[a](P) from PERC[a](P).
type PerceptionImpliesKnowledge struct{}

func (PerceptionImpliesKnowledge) Name() string { return "perception_implies_knowledge" }

func (PerceptionImpliesKnowledge) CanApply(fs []logic.Formula) bool {
	return hasCognitive(fs, logic.Perception)
}

func (PerceptionImpliesKnowledge) Apply(fs []logic.Formula) ([]logic.Formula, error) {
	var out []logic.Formula
	for _, f := range fs {
		if c, ok := asCognitive(f, logic.Perception); ok {
			out = append(out, attitude(logic.Knowledge, c.Agent, c.Body))
		}
	}
	return out, nil
}

// BeliefNegation derives ¬B[a](P) from B[a](¬P): a consistent agent does not
// also believe the opposite.
type BeliefNegation struct{}

func (BeliefNegation) Name() string { return "belief_negation" }

func (BeliefNegation) CanApply(fs []logic.Formula) bool { return hasCognitive(fs, logic.Belief) }

func (BeliefNegation) Apply(fs []logic.Formula) ([]logic.Formula, error) {
	var out []logic.Formula
	for _, f := range fs {
		c, ok := asCognitive(f, logic.Belief)
		if !ok {
			continue
		}
		if core, negated := asNot(c.Body); negated {
			out = append(out, logic.Not(attitude(logic.Belief, c.Agent, core)))
		}
	}
	return out, nil
}

// KnowledgeVeridicality derives P from K[a](P): knowledge is factive.
type KnowledgeVeridicality struct{}

func (KnowledgeVeridicality) Name() string { return "knowledge_veridicality" }

func (KnowledgeVeridicality) CanApply(fs []logic.Formula) bool {
	return hasCognitive(fs, logic.Knowledge)
}

func (KnowledgeVeridicality) Apply(fs []logic.Formula) ([]logic.Formula, error) {
	var out []logic.Formula
	for _, f := range fs {
		if c, ok := asCognitive(f, logic.Knowledge); ok {
			out = append(out, c.Body)
		}
	}
	return out, nil
}

// IntentionPersistence derives B[a](EVENTUALLY(P)) from I[a](P): an agent
// intending P believes P will come about.
type IntentionPersistence struct{}

func (IntentionPersistence) Name() string { return "intention_persistence" }

func (IntentionPersistence) CanApply(fs []logic.Formula) bool {
	return hasCognitive(fs, logic.Intention)
}

func (IntentionPersistence) Apply(fs []logic.Formula) ([]logic.Formula, error) {
	var out []logic.Formula
	for _, f := range fs {
		if c, ok := asCognitive(f, logic.Intention); ok {
			out = append(out, attitude(logic.Belief, c.Agent, temp(logic.Eventually, nil, c.Body)))
		}
	}
	return out, nil
}
