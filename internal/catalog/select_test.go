package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alfazet/musing/internal/model"
)

func songWith(path string, tags map[model.Tag]string) *model.Song {
	return &model.Song{Path: path, Tags: tags}
}

func TestSelectGroupAndSort(t *testing.T) {
	c := &Catalog{Root: "/music"}
	c.cur.Store(buildIndexes(map[string]*model.Song{
		"/music/a1.mp3": songWith("/music/a1.mp3", map[model.Tag]string{model.Album: "A", model.TrackNumber: "1"}),
		"/music/a2.mp3": songWith("/music/a2.mp3", map[model.Tag]string{model.Album: "A", model.TrackNumber: "2"}),
		"/music/b1.mp3": songWith("/music/b1.mp3", map[model.Tag]string{model.Album: "B", model.TrackNumber: "1"}),
	}))

	groups := c.Select(
		[]model.Tag{model.TrackTitle},
		nil,
		[]model.Tag{model.Album},
		[]model.Comparator{{Tag: model.TrackNumber, Order: model.Descending}},
	)

	require.Len(t, groups, 2)
	assert.Equal(t, "A", groups[0].Key[model.Album])
	require.Len(t, groups[0].Data, 2)
	assert.Equal(t, "/music/a2.mp3", groups[0].Data[0][len(groups[0].Data[0])-1])
	assert.Equal(t, "/music/a1.mp3", groups[0].Data[1][len(groups[0].Data[1])-1])
	assert.Equal(t, "B", groups[1].Key[model.Album])
}

func TestSelectUngroupedIsSingleSyntheticGroup(t *testing.T) {
	c := &Catalog{Root: "/music"}
	c.cur.Store(buildIndexes(map[string]*model.Song{
		"/music/a.mp3": songWith("/music/a.mp3", map[model.Tag]string{model.Artist: "X"}),
	}))

	groups := c.Select([]model.Tag{model.Artist}, nil, nil, nil)
	require.Len(t, groups, 1)
	assert.Len(t, groups[0].Data, 1)
}

func TestSelectMissingTagSortsAfterPresent(t *testing.T) {
	withTag := songWith("/music/with.mp3", map[model.Tag]string{model.Artist: "X"})
	withoutTag := songWith("/music/without.mp3", map[model.Tag]string{})

	cmp := model.Comparator{Tag: model.Artist, Order: model.Ascending}
	assert.Equal(t, -1, cmp.Cmp(withTag, withoutTag))
	assert.Equal(t, 1, cmp.Cmp(withoutTag, withTag))

	cmpDesc := model.Comparator{Tag: model.Artist, Order: model.Descending}
	assert.Equal(t, 1, cmpDesc.Cmp(withoutTag, withTag))
}
