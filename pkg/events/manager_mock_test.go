package events_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/offlinefirst/sideswipe/pkg/events"
	"github.com/offlinefirst/sideswipe/pkg/events/mocks"
	"github.com/offlinefirst/sideswipe/pkg/prefs"
)

func TestStartRegistersButtonMaskOnce(t *testing.T) {
	ctrl := gomock.NewController(t)
	hook := mocks.NewMockHook(ctrl)
	injector := mocks.NewMockInjector(ctrl)

	hook.EXPECT().
		Register(events.MaskOf(events.KindButtonDown, events.KindButtonUp), gomock.Any()).
		Return(nil).
		Times(1)

	m, err := events.NewManager(events.Options{
		Hook:        hook,
		Injector:    injector,
		Preferences: prefs.Open(nil, nil),
	})
	require.NoError(t, err)

	require.NoError(t, m.Start())
	require.NoError(t, m.Start())
	assert.True(t, m.IsRunning())
}

func TestSwipeBuildFailureInjectsNothing(t *testing.T) {
	ctrl := gomock.NewController(t)
	hook := mocks.NewMockHook(ctrl)
	injector := mocks.NewMockInjector(ctrl)
	resolver := mocks.NewMockForegroundResolver(ctrl)
	begin := mocks.NewMockSynthetic(ctrl)

	var handler events.HandlerFunc
	hook.EXPECT().Register(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ events.Mask, h events.HandlerFunc) error {
			handler = h
			return nil
		})
	resolver.EXPECT().Frontmost().Return(events.Application{Identifier: "com.app.B"}, true)

	gomock.InOrder(
		injector.EXPECT().Build(events.BeginGesture()).Return(begin, nil),
		injector.EXPECT().Build(events.SwipeGesture(events.DirectionLeft)).Return(nil, errors.New("out of memory")),
		begin.EXPECT().Release(),
	)
	injector.EXPECT().Post(gomock.Any()).Times(0)

	m, err := events.NewManager(events.Options{
		Hook:        hook,
		Injector:    injector,
		Resolver:    resolver,
		Preferences: prefs.Open(nil, nil),
	})
	require.NoError(t, err)
	require.NoError(t, m.Start())
	require.NotNil(t, handler)

	ev := events.ButtonEvent{Kind: events.KindButtonDown, Button: events.ButtonBack}
	out, forwarded := handler(ev)
	assert.True(t, forwarded)
	assert.Equal(t, ev, out)
}

func TestPanicAfterPostSuppressesOriginal(t *testing.T) {
	ctrl := gomock.NewController(t)
	hook := mocks.NewMockHook(ctrl)
	injector := mocks.NewMockInjector(ctrl)
	resolver := mocks.NewMockForegroundResolver(ctrl)
	begin := mocks.NewMockSynthetic(ctrl)
	swipe := mocks.NewMockSynthetic(ctrl)

	var handler events.HandlerFunc
	hook.EXPECT().Register(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ events.Mask, h events.HandlerFunc) error {
			handler = h
			return nil
		})
	resolver.EXPECT().Frontmost().Return(events.Application{Identifier: "com.app.B"}, true)

	gomock.InOrder(
		injector.EXPECT().Build(events.BeginGesture()).Return(begin, nil),
		injector.EXPECT().Build(events.SwipeGesture(events.DirectionLeft)).Return(swipe, nil),
		injector.EXPECT().Post(same{begin}),
		injector.EXPECT().Post(same{swipe}).Do(func(events.Synthetic) {
			panic("window server went away")
		}),
	)
	begin.EXPECT().Release()
	swipe.EXPECT().Release()

	m, err := events.NewManager(events.Options{
		Hook:        hook,
		Injector:    injector,
		Resolver:    resolver,
		Preferences: prefs.Open(nil, nil),
	})
	require.NoError(t, err)
	require.NoError(t, m.Start())
	require.NotNil(t, handler)

	_, forwarded := handler(events.ButtonEvent{Kind: events.KindButtonDown, Button: events.ButtonBack})
	assert.False(t, forwarded)
}

func TestSwipePostsBeginThenSwipe(t *testing.T) {
	ctrl := gomock.NewController(t)
	injector := mocks.NewMockInjector(ctrl)
	begin := mocks.NewMockSynthetic(ctrl)
	swipe := mocks.NewMockSynthetic(ctrl)

	gomock.InOrder(
		injector.EXPECT().Build(events.BeginGesture()).Return(begin, nil),
		injector.EXPECT().Build(events.SwipeGesture(events.DirectionRight)).Return(swipe, nil),
		injector.EXPECT().Post(same{begin}),
		injector.EXPECT().Post(same{swipe}),
	)
	begin.EXPECT().Release()
	swipe.EXPECT().Release()

	assert.True(t, events.NewSynthesizer(injector, nil).Emit(events.DirectionLeft, true))
}

// same matches by identity; two fresh mocks are otherwise deeply equal.
type same struct{ want any }

func (s same) Matches(x any) bool { return x == s.want }
func (s same) String() string     { return "is the same instance" }
