package item

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSerialGenerator_Wraps(t *testing.T) {
	g := NewSerialGenerator(MaxSerial - 1)
	assert.Equal(t, MaxSerial, g.Next())
	assert.Equal(t, int32(1), g.Next())
	assert.Equal(t, int32(2), g.Next())
}

func TestSerialGenerator_ZeroValueStartsAtOne(t *testing.T) {
	var g SerialGenerator
	assert.Equal(t, int32(1), g.Next())
}

func TestSerialGenerator_Concurrent(t *testing.T) {
	var g SerialGenerator
	const workers, each = 8, 500

	var (
		mu   sync.Mutex
		seen = make(map[int32]bool, workers*each)
		wg   sync.WaitGroup
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			local := make([]int32, 0, each)
			for j := 0; j < each; j++ {
				local = append(local, g.Next())
			}
			mu.Lock()
			for _, s := range local {
				seen[s] = true
			}
			mu.Unlock()
		}()
	}
	wg.Wait()
	assert.Len(t, seen, workers*each, "serials must be unique")
}

func TestInstance_PutAndCount(t *testing.T) {
	bag := NewInstance(&Data{ID: 17005, ItemClass: ClassContainer}, 0)
	ration := NewInstance(&Data{ID: 13005, Stackable: true}, 5)

	require.NoError(t, bag.Put(0, ration))
	require.NoError(t, bag.Put(9, NewInstance(&Data{ID: 1001}, 0)))
	assert.Equal(t, 2, bag.Count())
	assert.Same(t, ration, bag.Get(0))
	assert.Nil(t, bag.Get(5))
	assert.Nil(t, bag.Get(ContainerSize))

	assert.Error(t, bag.Put(ContainerSize, ration))
	assert.Error(t, bag.Put(-1, ration))
	assert.Error(t, bag.Put(1, bag))
	assert.True(t, ration.IsStackable())
	assert.NotEqual(t, bag.SerialNumber, ration.SerialNumber)
}

func TestInstance_HeroModel(t *testing.T) {
	inst := &Instance{OrnamentHeroModel: 12}
	assert.Equal(t, uint32(1201), inst.HeroModel(1))
	assert.Equal(t, uint32(12), inst.HeroModel(7))
	assert.Equal(t, uint32(12), inst.HeroModel(8))
	assert.Equal(t, uint32(0), inst.HeroModel(-1))
	assert.Equal(t, uint32(0), (&Instance{}).HeroModel(1))
}
