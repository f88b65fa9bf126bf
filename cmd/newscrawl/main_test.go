package main_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/newscrawl"
	main "github.com/fwojciec/newscrawl/cmd/newscrawl"
	"github.com/fwojciec/newscrawl/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const articlePage = `<!DOCTYPE html>
<html lang="vi">
<head>
<title>Giá vàng tăng mạnh trong phiên sáng</title>
<meta property="og:image" content="https://cdn.example.com/top.jpg">
</head>
<body>
<ul class="breadcrumb"><li><a href="/kinh-doanh">Kinh doanh</a></li><li><a href="/vang">Vàng</a></li></ul>
<span class="date">Thứ hai, 1/1/2024, 08:00 (GMT+7)</span>
<article class="fck_detail">
<p>Giá vàng miếng trong nước sáng nay tăng mạnh theo đà đi lên của thị trường thế giới, khi nhà đầu tư tìm đến tài sản an toàn giữa nhiều biến động.</p>
<p>Các doanh nghiệp kinh doanh vàng lớn đồng loạt điều chỉnh giá niêm yết, chênh lệch giữa giá mua và giá bán tiếp tục duy trì ở mức cao so với trước đây.</p>
<p>Theo các chuyên gia, xu hướng tăng có thể còn kéo dài trong ngắn hạn, nhưng người mua cần thận trọng với rủi ro đảo chiều. Xem thêm <a href="/phan-tich">phân tích</a>.</p>
<p>Tại thị trường quốc tế, giá vàng giao ngay cũng tăng hơn một phần trăm trong phiên giao dịch châu Á, khi đồng USD suy yếu và lợi suất trái phiếu giảm trở lại sau nhiều tuần biến động.</p>
<p>Minh Anh</p>
</article>
</body>
</html>`

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestCLI_HelpShowsAllCommands(t *testing.T) {
	t.Parallel()

	cli := &main.CLI{}
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	parser, err := kong.New(cli,
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
	)
	require.NoError(t, err)

	_, _ = parser.Parse([]string{"--help"})

	helpOutput := stdout.String()
	for _, cmd := range []string{"prepare", "harvest"} {
		assert.Contains(t, helpOutput, cmd, "Help should mention %s command", cmd)
	}
}

func TestMain_Run_Help(t *testing.T) {
	t.Parallel()

	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	err := main.NewMain().Run(context.Background(), []string{"--help"}, stdout, stderr)

	require.NoError(t, err)
	assert.Contains(t, stdout.String(), "harvest")
}

func TestMain_Run_NoArgs(t *testing.T) {
	t.Parallel()

	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	err := main.NewMain().Run(context.Background(), nil, stdout, stderr)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "no command specified")
	assert.Contains(t, stdout.String(), "prepare")
}

func TestMain_Run_Prepare(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	input := filepath.Join(dir, "urls.csv")
	writeFile(t, input, strings.Join([]string{
		"https://vnexpress.net/a",
		"https://vnexpress.net/b#box_comment_vne",
		"https://vnexpress.net/a",
		"https://vnexpress.net/c",
	}, "\n")+"\n")

	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	err := main.NewMain().Run(context.Background(), []string{
		"--config", filepath.Join(dir, "missing.yaml"),
		"prepare", input,
		"--keyword", "#box_comment_vne",
	}, stdout, stderr)

	require.NoError(t, err, stderr.String())
	data, err := os.ReadFile(input)
	require.NoError(t, err)
	assert.Equal(t, "https://vnexpress.net/a\nhttps://vnexpress.net/c\n", string(data))
	assert.Contains(t, stdout.String(), "1 duplicates removed")
	assert.Contains(t, stdout.String(), "1 filtered")
}

func TestMain_Run_PrepareMissingInput(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	err := main.NewMain().Run(context.Background(), []string{
		"--config", filepath.Join(dir, "missing.yaml"),
		"prepare", filepath.Join(dir, "nope.csv"),
	}, stdout, stderr)

	require.Error(t, err)
	assert.Contains(t, stderr.String(), "error:")
}

func TestMain_Run_Harvest(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/missing" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(articlePage))
	}))
	defer srv.Close()

	dir := t.TempDir()
	input := filepath.Join(dir, "urls.csv")
	output := filepath.Join(dir, "out", "crawler.json")
	writeFile(t, input, srv.URL+"/gia-vang.html\n"+srv.URL+"/missing\n")
	writeFile(t, filepath.Join(dir, "newscrawl.yaml"), "retry_delays: []\n")

	m := main.NewMain()
	m.Renderer = &mock.Renderer{
		RenderFn: func(_ context.Context, url string) (string, error) {
			return `<div class="comment_item width_common">
<span class="time-com">2h trước</span>
<span class="nickname">hoa_nguyen</span>
<p class="full_content">hoa_nguyen Giá lên nhanh quá</p>
</div>`, nil
		},
		CloseFn: func() error { return nil },
	}

	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	err := m.Run(context.Background(), []string{
		"--config", filepath.Join(dir, "newscrawl.yaml"),
		"harvest", input,
		"-o", output,
		"--comments",
	}, stdout, stderr)

	require.NoError(t, err, stderr.String())
	assert.Contains(t, stdout.String(), "Found 2 URLs")
	assert.Contains(t, stdout.String(), "Saved 2 records")

	data, err := os.ReadFile(output)
	require.NoError(t, err)

	var records []map[string]any
	require.NoError(t, json.Unmarshal(data, &records))
	require.Len(t, records, 2)

	first := records[0]
	assert.Equal(t, "Thứ hai, 1/1/2024, 08:00 (GMT+7)", first["Date"])
	assert.Equal(t, "['Kinh doanh', 'Vàng']", first["Category"])
	assert.Equal(t, []any{"['phân tích', '/phan-tich']"}, first["List tag a"])
	assert.Contains(t, first["Content"], "Giá vàng miếng trong nước")
	assert.Equal(t, []any{map[string]any{
		"Date cmt": "2h trước",
		"Nickname": "hoa_nguyen",
		"Comment":  "Giá lên nhanh quá",
	}}, first["Comments"])

	// A failed fetch still yields a record, with comments attempted.
	second := records[1]
	assert.Equal(t, "", second["Title"])
	assert.Equal(t, "", second["Content"])
	assert.Equal(t, []any{}, second["List tag a"])
	assert.Len(t, second["Comments"], 1)
}

func TestMain_Run_HarvestMissingInputIsFatal(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	output := filepath.Join(dir, "crawler.json")
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	err := main.NewMain().Run(context.Background(), []string{
		"--config", filepath.Join(dir, "missing.yaml"),
		"harvest", filepath.Join(dir, "nope.csv"),
		"-o", output,
	}, stdout, stderr)

	require.Error(t, err)
	_, statErr := os.Stat(output)
	assert.True(t, os.IsNotExist(statErr), "no output should be written")
}

func TestMain_Run_InvalidFlagValue(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	input := filepath.Join(dir, "urls.csv")
	writeFile(t, input, "https://vnexpress.net/a\n")

	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	err := main.NewMain().Run(context.Background(), []string{
		"--config", filepath.Join(dir, "missing.yaml"),
		"harvest", input,
		"--engine", "newspaper",
	}, stdout, stderr)

	require.Error(t, err)
	assert.Equal(t, newscrawl.EINVALID, newscrawl.ErrorCode(err))
	assert.Contains(t, stderr.String(), "unknown engine")
}
