//go:build integration

package rod_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fwojciec/newscrawl"
	"github.com/fwojciec/newscrawl/goquery"
	"github.com/fwojciec/newscrawl/rod"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// lazyCommentsPage appends the comment section only after the user scrolls.
const lazyCommentsPage = `<!DOCTYPE html>
<html>
<body>
<div style="height: 5000px">article</div>
<div id="box_comment"></div>
<script>
window.addEventListener('scroll', function () {
  if (document.getElementById('loaded')) return;
  document.getElementById('box_comment').innerHTML =
    '<div id="loaded" class="comment_item width_common">' +
    '<span class="time-com">2h</span>' +
    '<span class="nickname">lan</span>' +
    '<p class="full_content">lan Bài viết hay</p>' +
    '</div>';
});
</script>
</body>
</html>`

func TestRenderer_Render_LoadsLazyComments(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(lazyCommentsPage))
	}))
	defer srv.Close()

	renderer, err := rod.NewRenderer(rod.WithSettleDelay(200 * time.Millisecond))
	require.NoError(t, err)
	defer renderer.Close()

	html, err := renderer.Render(context.Background(), srv.URL)
	require.NoError(t, err)

	comments, err := goquery.NewCommentParser().ParseComments(html)
	require.NoError(t, err)
	require.Len(t, comments, 1)
	assert.Equal(t, newscrawl.Comment{Date: "2h", Author: "lan", Content: "Bài viết hay"}, comments[0])
}

func TestRenderer_Render_ContextCancellation(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	renderer, err := rod.NewRenderer()
	require.NoError(t, err)
	defer renderer.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = renderer.Render(ctx, srv.URL)

	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRenderer_Render_TimeoutTriggersOnSlowPage(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(500 * time.Millisecond)
		_, _ = w.Write([]byte(`<html><body>delayed</body></html>`))
	}))
	defer srv.Close()

	renderer, err := rod.NewRenderer(rod.WithRenderTimeout(100 * time.Millisecond))
	require.NoError(t, err)
	defer renderer.Close()

	_, err = renderer.Render(context.Background(), srv.URL)

	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestRenderer_Render_BoundsSessions(t *testing.T) {
	t.Parallel()

	var inFlight, peak atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "favicon.ico") {
			http.NotFound(w, r)
			return
		}
		n := inFlight.Add(1)
		for {
			p := peak.Load()
			if n <= p || peak.CompareAndSwap(p, n) {
				break
			}
		}
		time.Sleep(200 * time.Millisecond)
		inFlight.Add(-1)
		_, _ = w.Write([]byte(`<html><body>ok</body></html>`))
	}))
	defer srv.Close()

	renderer, err := rod.NewRenderer(rod.WithMaxSessions(1), rod.WithSettleDelay(0))
	require.NoError(t, err)
	defer renderer.Close()

	var wg sync.WaitGroup
	for range 3 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = renderer.Render(context.Background(), srv.URL)
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), peak.Load())
}
