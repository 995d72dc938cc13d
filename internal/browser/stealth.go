package browser

import (
	"math/rand"
	"time"

	"github.com/playwright-community/playwright-go"
)

// RandomDelay pauses for a random time between min and max milliseconds
func RandomDelay(min, max int) {
	if min >= max {
		time.Sleep(time.Duration(min) * time.Millisecond)
		return
	}
	time.Sleep(time.Duration(rand.Intn(max-min)+min) * time.Millisecond)
}

// MouseJiggle moves the mouse to a random viewport position to avoid
// idle detection
func MouseJiggle(page playwright.Page) {
	x := float64(rand.Intn(800) + 100)
	y := float64(rand.Intn(600) + 100)
	page.Mouse().Move(x, y)
	RandomDelay(100, 300)
}

// SmoothScroll scrolls the page the way a reader would, then jumps to
// the bottom to trigger lazy-loaded content
func SmoothScroll(page playwright.Page) {
	page.Mouse().Wheel(0, 500)
	RandomDelay(500, 1000)

	page.Mouse().Wheel(0, -200)
	RandomDelay(500, 800)

	page.Evaluate("window.scrollTo(0, document.body.scrollHeight)")
}
