package listops

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setOf(ids ...uuid.UUID) map[uuid.UUID]struct{} {
	s := make(map[uuid.UUID]struct{}, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

func TestReconcileBasicTransitions(t *testing.T) {
	t.Parallel()
	a, b, c := uuid.New(), uuid.New(), uuid.New()

	testCases := []struct {
		name         string
		members      map[uuid.UUID]struct{}
		instructions []Instruction
		wantApplied  []uuid.UUID
		wantRejected []Rejection
		wantMembers  map[uuid.UUID]struct{}
	}{
		{
			name:         "add to empty list",
			members:      setOf(),
			instructions: []Instruction{{ProblemID: a, Add: true}},
			wantApplied:  []uuid.UUID{a},
			wantRejected: []Rejection{},
			wantMembers:  setOf(a),
		},
		{
			name:         "add existing member is rejected",
			members:      setOf(a),
			instructions: []Instruction{{ProblemID: a, Add: true}},
			wantApplied:  []uuid.UUID{},
			wantRejected: []Rejection{{ProblemID: a, Reason: ReasonAlreadyPresent}},
			wantMembers:  setOf(a),
		},
		{
			name:         "remove absent member is rejected",
			members:      setOf(a),
			instructions: []Instruction{{ProblemID: b, Add: false}},
			wantApplied:  []uuid.UUID{},
			wantRejected: []Rejection{{ProblemID: b, Reason: ReasonNotPresent}},
			wantMembers:  setOf(a),
		},
		{
			name:    "mixed batch with one rejection",
			members: setOf(a, b),
			instructions: []Instruction{
				{ProblemID: c, Add: true},
				{ProblemID: a, Add: false},
				{ProblemID: a, Add: false},
			},
			wantApplied:  []uuid.UUID{c, a},
			wantRejected: []Rejection{{ProblemID: a, Reason: ReasonNotPresent}},
			wantMembers:  setOf(b, c),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			result, report := Reconcile(tc.members, tc.instructions, nil)

			assert.Equal(t, tc.wantApplied, report.Applied)
			assert.Equal(t, tc.wantRejected, report.Rejected)
			assert.Equal(t, tc.wantMembers, result)
		})
	}
}

func TestReconcileOrderSensitivity(t *testing.T) {
	t.Parallel()
	x := uuid.New()

	t.Run("remove then add both succeed", func(t *testing.T) {
		result, report := Reconcile(setOf(x), []Instruction{
			{ProblemID: x, Add: false},
			{ProblemID: x, Add: true},
		}, nil)

		assert.Equal(t, []uuid.UUID{x, x}, report.Applied)
		assert.Empty(t, report.Rejected)
		assert.Contains(t, result, x)
	})

	t.Run("add then remove rejects the add", func(t *testing.T) {
		result, report := Reconcile(setOf(x), []Instruction{
			{ProblemID: x, Add: true},
			{ProblemID: x, Add: false},
		}, nil)

		assert.Equal(t, []uuid.UUID{x}, report.Applied)
		assert.Equal(t, []Rejection{{ProblemID: x, Reason: ReasonAlreadyPresent}}, report.Rejected)
		assert.NotContains(t, result, x)
	})
}

func TestReconcileUnknownProblems(t *testing.T) {
	t.Parallel()
	knownID, unknownID := uuid.New(), uuid.New()
	known := func(id uuid.UUID) bool { return id == knownID }

	result, report := Reconcile(setOf(), []Instruction{
		{ProblemID: unknownID, Add: true},
		{ProblemID: knownID, Add: true},
		{ProblemID: unknownID, Add: false},
	}, known)

	assert.Equal(t, []uuid.UUID{knownID}, report.Applied)
	require.Len(t, report.Rejected, 2)
	assert.Equal(t, Rejection{ProblemID: unknownID, Reason: ReasonUnknownProblem}, report.Rejected[0])
	assert.Equal(t, Rejection{ProblemID: unknownID, Reason: ReasonUnknownProblem}, report.Rejected[1])
	assert.Equal(t, setOf(knownID), result)
}

func TestReconcileSetEquivalence(t *testing.T) {
	t.Parallel()

	// When each problem appears in at most one instruction, the result
	// must equal (members ∪ adds) \ removes, with applied holding
	// exactly the legal transitions.
	a, b, c, d := uuid.New(), uuid.New(), uuid.New(), uuid.New()
	members := setOf(a, b)

	result, report := Reconcile(members, []Instruction{
		{ProblemID: c, Add: true},  // legal add
		{ProblemID: a, Add: false}, // legal remove
		{ProblemID: d, Add: false}, // illegal remove
	}, nil)

	assert.Equal(t, setOf(b, c), result)
	assert.Equal(t, []uuid.UUID{c, a}, report.Applied)
	assert.Equal(t, []Rejection{{ProblemID: d, Reason: ReasonNotPresent}}, report.Rejected)
}

func TestReconcileDeterminism(t *testing.T) {
	t.Parallel()
	a, b := uuid.New(), uuid.New()
	members := setOf(a)
	batch := []Instruction{
		{ProblemID: b, Add: true},
		{ProblemID: a, Add: false},
		{ProblemID: a, Add: false},
	}

	firstResult, firstReport := Reconcile(members, batch, nil)
	secondResult, secondReport := Reconcile(members, batch, nil)

	assert.Equal(t, firstResult, secondResult)
	assert.Equal(t, firstReport, secondReport)
}

func TestReconcileDoesNotMutateInput(t *testing.T) {
	t.Parallel()
	a, b := uuid.New(), uuid.New()
	members := setOf(a)

	_, _ = Reconcile(members, []Instruction{
		{ProblemID: a, Add: false},
		{ProblemID: b, Add: true},
	}, nil)

	assert.Equal(t, setOf(a), members, "input member set was mutated")
}

func TestReconcileEmptyBatch(t *testing.T) {
	t.Parallel()
	a := uuid.New()

	result, report := Reconcile(setOf(a), nil, nil)

	assert.Equal(t, setOf(a), result)
	assert.Empty(t, report.Applied)
	assert.Empty(t, report.Rejected)
}
