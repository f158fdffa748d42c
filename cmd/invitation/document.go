package main

import (
	"math"

	"github.com/phanxgames/envelope"
)

var (
	ink       = envelope.RGBA8(74, 44, 56, 1)
	rose      = envelope.RGBA8(214, 111, 140, 1)
	blush     = envelope.RGBA8(244, 230, 233, 1)
	paper     = envelope.RGBA8(255, 252, 250, 1)
	gateShade = envelope.RGBA8(43, 27, 34, 1)
)

const (
	envelopeW = 280.0
	envelopeH = 180.0
	flapH     = 100.0
	buttonW   = 140.0
	buttonH   = 44.0
	columnMax = 640.0
)

// section is one block of page content.
type section struct {
	title string
	body  string
}

var sections = []section{
	{"Together with their families", "Ana & Leo\ninvite you to celebrate their wedding"},
	{"When", "Saturday, the twelfth of June\nat four o'clock in the afternoon"},
	{"Where", "The Glasshouse, Riverside Gardens\nReception to follow"},
	{"Dress code", "Garden formal\nSoft colours welcome"},
	{"RSVP", "Kindly reply by the first of May"},
}

// document holds the nodes layout needs to move on resize.
type document struct {
	page        *envelope.Node
	blocks      []*envelope.Node
	petalCanvas *envelope.Node

	gate       *envelope.Node
	shade      *envelope.Node
	rainCanvas *envelope.Node
	env        *envelope.Node
	body       *envelope.Node
	flap       *envelope.Node
	open       *envelope.Node
	openLabel  *envelope.Node
}

func buildDocument(scene *envelope.Scene) *document {
	d := &document{}

	// Page: hidden and slightly lowered until the sequence fades it in.
	d.page = envelope.NewContainer("page").Mark(envelope.MarkerPage)
	d.page.Alpha = 0
	d.page.Visible = false
	d.page.OffsetY = 10
	scene.Page().AddChild(d.page)

	for i, s := range sections {
		block := envelope.NewBox("section", columnMax, 0, paper).Mark(envelope.MarkerReveal)
		title := envelope.NewText("section-title", s.title, 22, rose)
		title.Align = envelope.TextAlignCenter
		title.SetPosition(0, 28)
		body := envelope.NewText("section-body", s.body, 17, ink)
		body.Align = envelope.TextAlignCenter
		body.SetPosition(0, 74)
		block.AddChild(title)
		block.AddChild(body)
		if i == 0 {
			title.TextSize = 16
			body.TextSize = 26
		}
		d.page.AddChild(block)
		d.blocks = append(d.blocks, block)
	}

	// Petals float above the page but below the gate.
	d.petalCanvas = envelope.NewCanvas(envelope.PetalCanvasID)
	scene.Overlay().AddChild(d.petalCanvas)

	d.gate = envelope.NewContainer("gate").Mark(envelope.MarkerGate)
	d.shade = envelope.NewBox("gate-shade", 0, 0, gateShade)
	d.rainCanvas = envelope.NewCanvas(envelope.RainCanvasID)
	d.gate.AddChild(d.shade)
	d.gate.AddChild(d.rainCanvas)

	d.env = envelope.NewContainer("envelope").Mark(envelope.MarkerEnvelope)
	d.body = envelope.NewBox("envelope-body", envelopeW, envelopeH, blush)
	d.flap = envelope.NewBox("envelope-flap", envelopeW, flapH, envelope.RGBA8(232, 196, 206, 1)).Mark(envelope.MarkerFlap)
	d.flap.PivotY = 0
	seal := envelope.NewBox("seal", 28, 28, rose)
	seal.SetPosition(envelopeW/2-14, flapH-14)
	d.env.AddChild(d.body)
	d.env.AddChild(d.flap)
	d.flap.AddChild(seal)
	d.gate.AddChild(d.env)

	d.open = envelope.NewBox("open", buttonW, buttonH, rose).Mark(envelope.MarkerOpen)
	d.openLabel = envelope.NewText("open-label", "Open", 18, paper)
	d.openLabel.Align = envelope.TextAlignCenter
	d.openLabel.Width = buttonW
	d.openLabel.SetPosition(0, 10)
	d.open.AddChild(d.openLabel)
	d.gate.AddChild(d.open)

	scene.Overlay().AddChild(d.gate)
	return d
}

// layout positions everything for vp. Disposed gate nodes are ignored.
func (d *document) layout(vp envelope.Viewport) {
	col := math.Min(columnMax, vp.Width-48)
	x := (vp.Width - col) / 2
	y := vp.Height * 0.18
	for _, b := range d.blocks {
		b.SetSize(col, 150)
		b.SetPosition(x, y)
		for _, c := range b.Children() {
			c.Width = col
		}
		y += 150 + vp.Height*0.22
	}

	if d.gate.IsDisposed() {
		return
	}
	d.shade.SetSize(vp.Width, vp.Height)
	ex := (vp.Width - envelopeW) / 2
	ey := (vp.Height-envelopeH)/2 - 30
	d.env.SetPosition(ex, ey)
	d.open.SetPosition((vp.Width-buttonW)/2, ey+envelopeH+36)
}
