package folder_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/quillmail/ewsbox/pkg/models/folder"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name   string
		folder folder.Folder
		want   folder.WellKnownType
	}{
		{
			name:   "canonical display name",
			folder: folder.Folder{DisplayName: "Deleted Items"},
			want:   folder.DeletedItems,
		},
		{
			name:   "unknown display name",
			folder: folder.Folder{DisplayName: "Project X"},
			want:   folder.Other,
		},
		{
			name:   "service-tagged type wins over display name",
			folder: folder.Folder{DisplayName: "Indbakke", Type: folder.Inbox},
			want:   folder.Inbox,
		},
		{
			name:   "other is reclassified by display name",
			folder: folder.Folder{DisplayName: "Tasks", Type: folder.Other},
			want:   folder.Tasks,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.folder.Classify()
			assert.Equal(t, tt.want, tt.folder.Type)
		})
	}
}

func TestParseWellKnownType(t *testing.T) {
	got, ok := folder.ParseWellKnownType("sentitems")
	assert.True(t, ok)
	assert.Equal(t, folder.SentItems, got)

	got, ok = folder.ParseWellKnownType("attic")
	assert.False(t, ok)
	assert.Equal(t, folder.Other, got)
}

func TestDirectory(t *testing.T) {
	dir := folder.NewDirectory()
	for _, wk := range folder.WellKnownTypes() {
		flds, ok := dir[wk]
		assert.True(t, ok, "type %s missing", wk)
		assert.Empty(t, flds)
	}

	first := &folder.Folder{ID: "f1", DisplayName: "Inbox"}
	second := &folder.Folder{ID: "f2", DisplayName: "Indbakke", Type: folder.Inbox}
	third := &folder.Folder{ID: "f3", DisplayName: "Project X"}

	dir.Add(first)
	dir.Add(second)
	dir.Add(third)

	assert.Equal(t, []*folder.Folder{first, second}, dir.ByType(folder.Inbox))
	assert.Equal(t, []*folder.Folder{third}, dir.ByType(folder.Other))
	assert.Equal(t, 3, dir.Len())
}
