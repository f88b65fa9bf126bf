//go:build integration

package chromedp_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/fwojciec/newscrawl"
	"github.com/fwojciec/newscrawl/chromedp"
	"github.com/fwojciec/newscrawl/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ newscrawl.Renderer = (*chromedp.Renderer)(nil)

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
    '<span class="nickname">minh</span>' +
    '<p class="full_content">Cảm ơn tác giả</p>' +
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

	renderer, err := chromedp.NewRenderer(
		chromedp.WithSettleDelay(200*time.Millisecond),
		chromedp.WithHeadless(true),
	)
	require.NoError(t, err)
	defer renderer.Close()

	html, err := renderer.Render(context.Background(), srv.URL)
	require.NoError(t, err)

	comments, err := goquery.NewCommentParser().ParseComments(html)
	require.NoError(t, err)
	require.Len(t, comments, 1)
	assert.Equal(t, newscrawl.Comment{
		Date:    newscrawl.DefaultCommentDate,
		Author:  "minh",
		Content: "Cảm ơn tác giả",
	}, comments[0])
}

func TestRenderer_Render_ContextCancellation(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	renderer, err := chromedp.NewRenderer()
	require.NoError(t, err)
	defer renderer.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = renderer.Render(ctx, srv.URL)

	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRenderer_Render_AfterClose(t *testing.T) {
	t.Parallel()

	renderer, err := chromedp.NewRenderer()
	require.NoError(t, err)
	require.NoError(t, renderer.Close())
	require.NoError(t, renderer.Close())

	_, err = renderer.Render(context.Background(), "about:blank")

	require.Error(t, err)
	assert.Equal(t, newscrawl.ERENDER, newscrawl.ErrorCode(err))
}
