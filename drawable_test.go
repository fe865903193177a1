package textavatar

import (
	"bytes"
	"image"
	"image/color"
	"sync"
	"testing"

	"github.com/fogleman/gg"
)

func renderToImage(t *testing.T, d *Drawable, size int) *image.RGBA {
	t.Helper()
	dc := gg.NewContext(size, size)
	if err := d.Render(dc, image.Rect(0, 0, size, size)); err != nil {
		t.Fatalf("Render: %v", err)
	}
	img, ok := dc.Image().(*image.RGBA)
	if !ok {
		t.Fatalf("context image is %T, want *image.RGBA", dc.Image())
	}
	return img
}

func TestDrawable_RenderNeverFails(t *testing.T) {
	drawables := map[string]*Drawable{
		"plain rect":  New().BuildRect("A", 0xff0000),
		"plain round": New().BuildRound("b", 0x00ff00),
		"round rect":  New().BuildRoundRect("CD", 0x0000ff, 8),
		"bordered": New().BeginConfig().
			WithBorder(4).EndConfig().BuildRound("E", 0x3498db),
		"pinned layout": New().BeginConfig().
			Width(40).Height(40).FontSize(20).EndConfig().BuildRect("F", 0x222222),
		"bold upper": New().BeginConfig().
			Bold().ToUpperCase().EndConfig().BuildRound("gh", 0x9b59b6),
		"empty text": New().BuildRect("", 0x777777),
		"odd font":   New().BeginConfig().UseFont("no-such-family").EndConfig().BuildRect("I", 0),
	}

	for name, d := range drawables {
		t.Run(name, func(t *testing.T) {
			renderToImage(t, d, 64)
		})
	}
}

func TestDrawable_FillColor(t *testing.T) {
	img := renderToImage(t, New().BuildRect("A", 0xff0000), 64)

	// Sample away from the centered text.
	if got := img.RGBAAt(3, 3); got != (color.RGBA{0xff, 0, 0, 0xff}) {
		t.Errorf("corner pixel = %v, want opaque red", got)
	}
}

func TestDrawable_FillOverrideWins(t *testing.T) {
	d, err := New().Rect().BuildHex("A", "#00FF00")
	if err != nil {
		t.Fatalf("BuildHex: %v", err)
	}
	img := renderToImage(t, d, 64)

	if got := img.RGBAAt(3, 3); got != (color.RGBA{0, 0xff, 0, 0xff}) {
		t.Errorf("corner pixel = %v, want opaque green", got)
	}
}

func TestDrawable_BorderShade(t *testing.T) {
	d := New().BeginConfig().WithBorder(4).EndConfig().BuildRect("", 0xc86432)
	img := renderToImage(t, d, 64)

	// The stroke is inset by half its width, so it covers a 4px band
	// along each edge. Mid-edge, 2px in, sits at full coverage.
	if got := img.RGBAAt(2, 32); got != (color.RGBA{180, 90, 45, 0xff}) {
		t.Errorf("border pixel = %v, want (180,90,45)", got)
	}
	// Inside the band the fill shows through.
	if got := img.RGBAAt(10, 32); got != (color.RGBA{200, 100, 50, 0xff}) {
		t.Errorf("fill pixel = %v, want (200,100,50)", got)
	}
}

func TestDrawable_OvalLeavesCornersEmpty(t *testing.T) {
	img := renderToImage(t, New().BuildRound("", 0x3498db), 64)

	if got := img.RGBAAt(1, 1); got != (color.RGBA{}) {
		t.Errorf("corner pixel = %v, want untouched", got)
	}
	if got := img.RGBAAt(32, 6); got != (color.RGBA{0x34, 0x98, 0xdb, 0xff}) {
		t.Errorf("top-center pixel = %v, want fill", got)
	}
}

func TestDrawable_TranslucentOverride(t *testing.T) {
	d, err := New().Rect().BuildHex("", "#80FF0000")
	if err != nil {
		t.Fatalf("BuildHex: %v", err)
	}
	img := renderToImage(t, d, 64)

	// Premultiplied half-alpha red over a blank surface.
	if got := img.RGBAAt(3, 3); got != (color.RGBA{0x80, 0, 0, 0x80}) {
		t.Errorf("pixel = %v, want (128,0,0,128)", got)
	}
}

// Faces are shared through the font cache, so parallel renders onto
// separate contexts must not race. Run with -race.
func TestDrawable_ConcurrentRender(t *testing.T) {
	fonts := NewFontCache()
	d := New().BeginConfig().
		UseFontCache(fonts).Bold().EndConfig().
		BuildRound("AB", 0xe74c3c)

	const workers = 4
	var wg sync.WaitGroup
	errs := make(chan error, workers)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 20; j++ {
				dc := gg.NewContext(48, 48)
				if err := d.Render(dc, image.Rect(0, 0, 48, 48)); err != nil {
					errs <- err
					return
				}
			}
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Errorf("Render: %v", err)
	}
}

func TestDrawable_RenderIdempotent(t *testing.T) {
	d := New().BeginConfig().
		WithBorder(2).ToUpperCase().EndConfig().
		BuildRound("ab", 0xe74c3c)

	first := renderToImage(t, d, 48)
	second := renderToImage(t, d, 48)

	if !bytes.Equal(first.Pix, second.Pix) {
		t.Error("two renders of the same drawable differ")
	}
}

func TestDrawable_RenderWithOffsetBounds(t *testing.T) {
	dc := gg.NewContext(100, 100)
	d := New().BuildRect("", 0x112233)
	if err := d.Render(dc, image.Rect(20, 20, 80, 80)); err != nil {
		t.Fatalf("Render: %v", err)
	}
	img := dc.Image().(*image.RGBA)

	if got := img.RGBAAt(25, 25); got != (color.RGBA{0x11, 0x22, 0x33, 0xff}) {
		t.Errorf("inside pixel = %v, want fill", got)
	}
	if got := img.RGBAAt(5, 5); got != (color.RGBA{}) {
		t.Errorf("outside pixel = %v, want untouched", got)
	}
}

func TestDrawable_NilContext(t *testing.T) {
	if err := New().BuildRect("A", 0).Render(nil, image.Rect(0, 0, 1, 1)); err == nil {
		t.Error("Render(nil, …) succeeded, want error")
	}
}

func TestDrawable_Opacity(t *testing.T) {
	if got := New().BuildRect("A", 0).Opacity(); got != OpacityTranslucent {
		t.Errorf("Opacity() = %v, want OpacityTranslucent", got)
	}
}

func TestDrawable_IntrinsicSize(t *testing.T) {
	d := New().BeginConfig().Width(40).EndConfig().BuildRect("A", 0)
	if d.IntrinsicWidth() != 40 {
		t.Errorf("IntrinsicWidth() = %d, want 40", d.IntrinsicWidth())
	}
	if d.IntrinsicHeight() != -1 {
		t.Errorf("IntrinsicHeight() = %d, want -1", d.IntrinsicHeight())
	}
}

func TestDrawable_AlphaAndFilterAffectTextOnly(t *testing.T) {
	d := New().BuildRect("A", 0x446688)
	d.SetAlpha(0)
	d.SetColorFilter(func(color.Color) color.Color {
		return color.NRGBA{}
	})
	img := renderToImage(t, d, 64)

	if got := img.RGBAAt(3, 3); got != (color.RGBA{0x44, 0x66, 0x88, 0xff}) {
		t.Errorf("fill pixel = %v, want fill color unaffected by text paint", got)
	}
}
