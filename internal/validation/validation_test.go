package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestValidationResultCreation tests creating a new result
func TestValidationResultCreation(t *testing.T) {
	result := NewResult()

	assert.NotNil(t, result)
	assert.Empty(t, result.Messages)
	assert.True(t, result.IsValid())
	assert.True(t, result.CanImport())
	assert.True(t, result.CanPromote())
}

// TestAddError tests adding error messages
func TestAddError(t *testing.T) {
	result := NewResult()

	result.AddError("OVERLAP", "work orders wo-1 and wo-2 overlap on work center wc-1")

	assert.Len(t, result.Messages, 1)
	assert.False(t, result.IsValid())
	assert.False(t, result.CanImport())
	assert.False(t, result.CanPromote())
	assert.Equal(t, 1, result.ErrorCount())
}

// TestAddWarning tests adding warning messages
func TestAddWarning(t *testing.T) {
	result := NewResult()

	result.AddWarning("IDLE_GAP", "work center wc-1 sits idle for 3 shifts before wo-4")

	assert.Len(t, result.Messages, 1)
	assert.True(t, result.IsValid())   // Warnings don't make it invalid
	assert.True(t, result.CanImport()) // Can import with warnings
	assert.False(t, result.CanPromote()) // Cannot promote with warnings
	assert.Equal(t, 1, result.WarningCount())
}

// TestAddInfo tests adding info messages
func TestAddInfo(t *testing.T) {
	result := NewResult()

	result.AddInfo("INFO_CODE", "This is informational")

	assert.Len(t, result.Messages, 1)
	assert.True(t, result.IsValid())
	assert.True(t, result.CanImport())
	assert.True(t, result.CanPromote())
	assert.Equal(t, 1, result.InfoCount())
}

// TestMultipleMessages tests collecting multiple messages
func TestMultipleMessages(t *testing.T) {
	result := NewResult()

	result.
		AddError("DUE_DATE_VIOLATION", "work order wo-3 finishes after manufacturing order mo-1's due date").
		AddWarning("IDLE_GAP", "work center wc-2 sits idle before wo-5").
		AddInfo("INFO_CODE", "reflow completed with warnings")

	assert.Len(t, result.Messages, 3)
	assert.Equal(t, 1, result.ErrorCount())
	assert.Equal(t, 1, result.WarningCount())
	assert.Equal(t, 1, result.InfoCount())
	assert.False(t, result.IsValid())
	assert.False(t, result.CanImport())
	assert.False(t, result.CanPromote())
}

// TestMessagesByCode tests filtering messages by code
func TestMessagesByCode(t *testing.T) {
	result := NewResult()

	result.
		AddError("UNKNOWN_WORK_CENTER", "work order wo-1 references unknown work center wc-9").
		AddError("UNKNOWN_WORK_CENTER", "work order wo-2 references unknown work center wc-9")

	messages := result.MessagesByCode("UNKNOWN_WORK_CENTER")

	assert.Len(t, messages, 2)
	for _, msg := range messages {
		assert.Equal(t, "UNKNOWN_WORK_CENTER", msg.Code)
	}
}

// TestMessagesBySeverity tests filtering messages by severity
func TestMessagesBySeverity(t *testing.T) {
	result := NewResult()

	result.
		AddError("CALENDAR_MISMATCH", "work order wo-1 falls outside wc-1's shift calendar").
		AddError("CALENDAR_MISMATCH", "work order wo-2 falls outside wc-1's shift calendar").
		AddWarning("IDLE_GAP", "Warning 1").
		AddInfo("CODE", "Info 1")

	errors := result.MessagesBySeverity(SeverityError)
	warnings := result.MessagesBySeverity(SeverityWarning)
	infos := result.MessagesBySeverity(SeverityInfo)

	assert.Len(t, errors, 2)
	assert.Len(t, warnings, 1)
	assert.Len(t, infos, 1)
}

// TestHasErrorsAndWarnings tests flag methods
func TestHasErrorsAndWarnings(t *testing.T) {
	resultClean := NewResult()
	assert.False(t, resultClean.HasErrors())
	assert.False(t, resultClean.HasWarnings())

	resultWithError := NewResult().AddError("CODE", "Error")
	assert.True(t, resultWithError.HasErrors())
	assert.False(t, resultWithError.HasWarnings())

	resultWithWarning := NewResult().AddWarning("CODE", "Warning")
	assert.False(t, resultWithWarning.HasErrors())
	assert.True(t, resultWithWarning.HasWarnings())

	resultWithBoth := NewResult().
		AddError("ERR", "Error").
		AddWarning("WARN", "Warning")
	assert.True(t, resultWithBoth.HasErrors())
	assert.True(t, resultWithBoth.HasWarnings())
}

// TestWithContext tests messages with additional context
func TestWithContext(t *testing.T) {
	result := NewResult()

	context := map[string]interface{}{
		"work_order_id":   "wo-1",
		"work_center_id": "wc-1",
	}

	result.AddErrorWithContext("OVERLAP", "work orders overlap", context)

	assert.Len(t, result.Messages, 1)
	msg := result.Messages[0]
	assert.Equal(t, context, msg.Context)
	assert.Equal(t, "wo-1", msg.Context["work_order_id"])
}

// TestToJSON tests JSON serialization
func TestToJSON(t *testing.T) {
	result := NewResult()

	result.
		AddError("UNKNOWN_WORK_CENTER", "unknown work center wc-9").
		AddWarning("IDLE_GAP", "idle gap before wo-5")

	json, err := result.ToJSON()

	assert.NoError(t, err)
	assert.NotEmpty(t, json)
	assert.Contains(t, json, "UNKNOWN_WORK_CENTER")
	assert.Contains(t, json, "IDLE_GAP")
	assert.Contains(t, json, "ERROR")
	assert.Contains(t, json, "WARNING")
}

// TestFromJSON tests JSON deserialization
func TestFromJSON(t *testing.T) {
	original := NewResult()
	original.
		AddError("UNKNOWN_WORK_CENTER", "unknown work center wc-9").
		AddWarning("IDLE_GAP", "idle gap before wo-5")

	jsonStr, err := original.ToJSON()
	require.NoError(t, err)

	// Deserialize
	restored, err := FromJSON(jsonStr)
	require.NoError(t, err)

	assert.Len(t, restored.Messages, 2)
	assert.Equal(t, original.ErrorCount(), restored.ErrorCount())
	assert.Equal(t, original.WarningCount(), restored.WarningCount())
}

// TestSummary tests human-readable summary
func TestSummary(t *testing.T) {
	result := NewResult()
	result.
		AddError("UNKNOWN_WORK_CENTER", "unknown work center wc-9").
		AddWarning("IDLE_GAP", "idle gap before wo-5").
		AddInfo("INFO", "Done")

	summary := result.Summary()

	assert.Contains(t, summary, "1 errors")
	assert.Contains(t, summary, "1 warnings")
	assert.Contains(t, summary, "1 info")
	assert.Contains(t, summary, "UNKNOWN_WORK_CENTER")
	assert.Contains(t, summary, "IDLE_GAP")
}

// TestChaining tests method chaining
func TestChaining(t *testing.T) {
	result := NewResult().
		AddError("CODE1", "Error 1").
		AddWarning("CODE2", "Warning 1").
		AddInfo("CODE3", "Info 1")

	assert.Len(t, result.Messages, 3)
	assert.Equal(t, 1, result.ErrorCount())
	assert.Equal(t, 1, result.WarningCount())
	assert.Equal(t, 1, result.InfoCount())
}

// TestRealWorldExample tests a multi-issue reflow diagnostic bundle
func TestRealWorldExample(t *testing.T) {
	result := NewResult()

	// Found overlapping work orders on a shared work center
	result.AddErrorWithContext(
		"OVERLAP",
		"work orders overlap on the same work center",
		map[string]interface{}{
			"work_center_id": "wc-1",
			"work_order_ids": []string{"wo-1", "wo-2"},
		},
	)

	// Found a due-date violation
	result.AddErrorWithContext(
		"DUE_DATE_VIOLATION",
		"work order finishes after its manufacturing order's due date",
		map[string]interface{}{
			"work_order_id":          "wo-3",
			"manufacturing_order_id": "mo-1",
		},
	)

	// Idle gap on a work center
	result.AddWarning(
		"IDLE_GAP",
		"work center wc-2 sits idle for 3 shifts before its next work order",
	)

	// Informational: how many work orders were reflowed
	result.AddInfo(
		"WORK_ORDERS_REFLOWED",
		"reflowed 12 work orders across 3 work centers",
	)

	// Cannot import due to errors
	assert.False(t, result.CanImport())
	// Cannot promote due to errors and warnings
	assert.False(t, result.CanPromote())
	// Has both errors and warnings
	assert.True(t, result.HasErrors())
	assert.True(t, result.HasWarnings())
}
