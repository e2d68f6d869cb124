package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeyCanonicalEncoding(t *testing.T) {
	a := NewKey(ResourceProfiles, map[string]string{"page": "1", "search": "ram", "verification_status": "pending"})
	b := NewKey(ResourceProfiles, map[string]string{"verification_status": "pending", "search": "ram", "page": "1"})

	assert.Equal(t, a.String(), b.String(), "param order must not affect key identity")
	assert.Equal(t, "profiles:page=1&search=ram&verification_status=pending", a.String())
}

func TestKeyEscapesFreeTextParams(t *testing.T) {
	// Search text is user input; metacharacters in a value must not read
	// as extra params.
	smuggled := NewKey(ResourceProfiles, map[string]string{"search": "x&sort=name"})
	split := NewKey(ResourceProfiles, map[string]string{"search": "x", "sort": "name"})

	assert.NotEqual(t, smuggled.String(), split.String(),
		"distinct queries must not collide under one key")
	assert.Equal(t, "profiles:search=x%26sort%3Dname", smuggled.String())
}

func TestKeyParamsChangeIdentity(t *testing.T) {
	page1 := NewKey(ResourceProfiles, map[string]string{"page": "1"})
	page2 := NewKey(ResourceProfiles, map[string]string{"page": "2"})
	assert.NotEqual(t, page1.String(), page2.String())

	bare := NewKey(ResourceStats, nil)
	assert.Equal(t, ResourceStats, bare.String())
}

func TestPatternForMatchesEveryScope(t *testing.T) {
	p := PatternFor(ResourceProfiles)

	assert.True(t, p.Matches(NewKey(ResourceProfiles, nil)))
	assert.True(t, p.Matches(NewKey(ResourceProfiles, map[string]string{"page": "3", "city": "pune"})))
	assert.False(t, p.Matches(NewKey(ResourceDeletedProfiles, nil)),
		"the deleted set is a separate resource from the live list")
	assert.False(t, p.Matches(NewKey(ResourceStats, nil)))
}

func TestPatternExactMatchesSingleKey(t *testing.T) {
	key := NewKey(ResourceProfiles, map[string]string{"id": "prof-1"})
	p := PatternExact(key)

	assert.True(t, p.Matches(NewKey(ResourceProfiles, map[string]string{"id": "prof-1"})))
	assert.False(t, p.Matches(NewKey(ResourceProfiles, map[string]string{"id": "prof-2"})))
	assert.False(t, p.Matches(NewKey(ResourceProfiles, nil)))
}
