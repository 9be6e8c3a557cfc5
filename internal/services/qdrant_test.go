package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/qdrant/go-client/qdrant"
	"github.com/stretchr/testify/assert"
)

func TestPayloadHelpers(t *testing.T) {
	payload := map[string]*qdrant.Value{
		"filename":         qdrant.NewValueString("resume.pdf"),
		"match_percentage": qdrant.NewValueDouble(72.5),
		"rank":             qdrant.NewValueInt(3),
	}

	assert.Equal(t, "resume.pdf", payloadString(payload, "filename"))
	assert.Empty(t, payloadString(payload, "missing"))
	assert.Empty(t, payloadString(payload, "rank"))

	assert.Equal(t, 72.5, payloadNumber(payload, "match_percentage"))
	assert.Equal(t, 3.0, payloadNumber(payload, "rank"))
	assert.Zero(t, payloadNumber(payload, "filename"))
	assert.Zero(t, payloadNumber(payload, "missing"))
}

func TestNewQdrantService_InvalidURL(t *testing.T) {
	_, err := NewQdrantService("://bad", "", "ats_resumes")
	assert.Error(t, err)
}

func TestNewResumePoint_UsesFullUUID(t *testing.T) {
	id := uuid.MustParse("00000000-0000-0000-0000-0000deadbeef")
	other := uuid.MustParse("11111111-1111-1111-1111-0000deadbeef")

	point := newResumePoint(id, IndexedResume{Filename: "cv.pdf", MatchPercentage: 81}, []float32{0.1, 0.2})

	assert.Equal(t, id.String(), point.GetId().GetUuid())
	assert.NotEqual(t, point.GetId().GetUuid(), newResumePoint(other, IndexedResume{}, nil).GetId().GetUuid())
	assert.Equal(t, "cv.pdf", payloadString(point.GetPayload(), "filename"))
	assert.Equal(t, 81.0, payloadNumber(point.GetPayload(), "match_percentage"))
}
