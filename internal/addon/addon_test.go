package addon

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBowPrice(t *testing.T) {
	require.Equal(t, 1.50, NewBow().Price())
	require.Equal(t, "Bow", NewBow().String())
}

func TestGiftCardPrice(t *testing.T) {
	require.Equal(t, DefaultCardBaseRate, NewGiftCard("").Price())
	require.Equal(t, DefaultCardBaseRate+2*DefaultCardCharRate, NewGiftCard("Hi").Price())
	require.Equal(t, 0.68, NewGiftCard("Congrats!").Price())
	require.Equal(t, 0.6, NewGiftCard("Hello").Price())
	// spaces count
	require.Equal(t, 0.56, NewGiftCard("a b").Price())
}

func TestGiftCardCountsCodePoints(t *testing.T) {
	card := NewGiftCard("héllo 🎁")
	require.Equal(t, 7, card.Length())
	require.Equal(t, 0.64, card.Price())
}

func TestGiftCardString(t *testing.T) {
	require.Equal(t, "Gift Card ['Happy Birthday']", NewGiftCard("Happy Birthday").String())
}

func TestOptional(t *testing.T) {
	none := None[Bow]()
	_, ok := none.Get()
	require.False(t, ok)
	require.False(t, none.IsPresent())

	some := Some(NewGiftCard("x"))
	card, ok := some.Get()
	require.True(t, ok)
	require.True(t, some.IsPresent())
	require.Equal(t, "x", card.Message)

	var zero Optional[GiftCard]
	require.False(t, zero.IsPresent())
}
