package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validLead() Lead {
	return Lead{
		Name:      "Sarah Johnson",
		Company:   "Acme Corp",
		Email:     "sarah@acme.com",
		Phone:     "(555) 123-4567",
		DealValue: 15000,
		Stage:     StageQualified,
		Source:    SourceWebsite,
	}
}

// TestLeadValidateOK - lead completo passa
func TestLeadValidateOK(t *testing.T) {
	l := validLead()
	assert.NoError(t, l.Validate())
}

// TestLeadValidateCollectsAllErrors - todas as falhas voltam juntas
func TestLeadValidateCollectsAllErrors(t *testing.T) {
	l := Lead{
		Email:     "not-an-email",
		Phone:     "12",
		DealValue: -1,
		Stage:     "Negotiation",
		Source:    "Billboard",
	}

	err := l.Validate()
	require.Error(t, err)

	var verrs ValidationErrors
	require.ErrorAs(t, err, &verrs)

	fields := map[string]bool{}
	for _, e := range verrs {
		fields[e.Field] = true
	}
	assert.True(t, fields["name"])
	assert.True(t, fields["email"])
	assert.True(t, fields["phone"])
	assert.True(t, fields["dealValue"])
	assert.True(t, fields["stage"])
	assert.True(t, fields["source"])
	assert.True(t, IsValidationError(err))
}

func TestLeadValidatePhoneFormats(t *testing.T) {
	for _, phone := range []string{"(555) 123-4567", "555-123-4567", "555.123.4567", "5551234567", ""} {
		l := validLead()
		l.Phone = phone
		assert.NoError(t, l.Validate(), phone)
	}

	l := validLead()
	l.Phone = "+55 11 99999-9999"
	assert.Error(t, l.Validate())
}

func TestLeadValidateAllowsEmptySource(t *testing.T) {
	l := validLead()
	l.Source = ""
	assert.NoError(t, l.Validate())
}

// TestLeadCloneIsDetached - alterar a cópia não mexe no original
func TestLeadCloneIsDetached(t *testing.T) {
	next := time.Date(2024, 2, 1, 10, 0, 0, 0, time.UTC)
	l := validLead()
	l.NextActionDate = &next

	c := l.Clone()
	*c.NextActionDate = c.NextActionDate.Add(48 * time.Hour)
	c.Name = "Other"

	assert.Equal(t, next, *l.NextActionDate)
	assert.Equal(t, "Sarah Johnson", l.Name)
}

func TestLeadPatchApply(t *testing.T) {
	next := time.Date(2024, 2, 1, 10, 0, 0, 0, time.UTC)
	l := validLead()
	l.ID = 3
	l.NextActionDate = &next

	name := "Sarah J."
	value := 18000.0
	stage := StageProposal
	LeadPatch{Name: &name, DealValue: &value, Stage: &stage}.Apply(&l)

	assert.Equal(t, 3, l.ID)
	assert.Equal(t, "Sarah J.", l.Name)
	assert.Equal(t, 18000.0, l.DealValue)
	assert.Equal(t, StageProposal, l.Stage)
	assert.Equal(t, "Acme Corp", l.Company)
	require.NotNil(t, l.NextActionDate)

	LeadPatch{ClearNextAction: true}.Apply(&l)
	assert.Nil(t, l.NextActionDate)
}

// TestLeadPatchFromRoundTrip - o patch completo reproduz o lead
func TestLeadPatchFromRoundTrip(t *testing.T) {
	src := validLead()
	src.LastContactDate = time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)

	var dst Lead
	LeadPatchFrom(src).Apply(&dst)

	assert.Equal(t, src, dst)
}

func TestStageIsQualified(t *testing.T) {
	assert.True(t, StageQualified.IsQualified())
	assert.True(t, StageProposal.IsQualified())
	assert.True(t, StageClosedWon.IsQualified())
	assert.False(t, StageNewLead.IsQualified())
	assert.False(t, StageContacted.IsQualified())
	assert.False(t, StageClosedLost.IsQualified())
}

func TestNotFoundWrapsSentinel(t *testing.T) {
	err := NotFound("lead", 42)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, "lead 42: not found", err.Error())
}
