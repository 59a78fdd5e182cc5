package ui

// LogKind distinguishes a routine log entry from one that should read
// as an alert (tinted accordingly).
type LogKind int

const (
	LogInfo LogKind = iota
	LogAlert
)

// LogCard is one entry in a LogPanel: a title/message pair that can
// pulse briefly when freshly added, modeled on LogCard's pulse_timer
// and expand/collapse height animation (narrowed to a fixed-height card
// with a fading pulse highlight, since the original's expand-on-hover
// behavior belongs to a richer hit-testing pass than this engine's
// base widgets need).
type LogCard struct {
	Base

	Kind    LogKind
	Title   string
	Message string

	pulseTimer float32
}

const logCardBaseHeight = 58

// NewLogCard builds a card with its pulse highlight fully lit.
func NewLogCard(kind LogKind, title, message string) *LogCard {
	c := &LogCard{Kind: kind, Title: title, Message: message, pulseTimer: 1}
	c.Base = NewBase(c)
	c.Base.SetHeightPolicy(Fixed(logCardBaseHeight))
	c.Base.SetWidthPolicy(Stretch(1))
	return c
}

// Update decays the pulse highlight toward zero.
func (c *LogCard) Update(dt float32) {
	if c.pulseTimer > 0 {
		c.pulseTimer -= dt * 2
		if c.pulseTimer < 0 {
			c.pulseTimer = 0
		}
	}
	c.Base.Update(dt)
}

// Draw paints a tinted background (brighter while pulseTimer is high)
// and the title/message pair.
func (c *LogCard) Draw(dl DrawList) {
	if !c.Visible() {
		return
	}
	alpha := c.EffectiveAlpha()
	r := c.AbsoluteRect()

	bg := ThemeID("panel.background").Resolve(Current())
	highlight := ThemeID("panel.border").Resolve(Current())
	bg = Blend(bg, highlight, c.pulseTimer*0.3)
	dl.Rect(r, Custom(bg), alpha)

	titleColor := ThemeID("text.primary")
	if c.Kind == LogAlert {
		titleColor = ThemeID("text.alert")
	}
	titleRect := Rect{X: r.X, Y: r.Y, W: r.W, H: r.H / 2}
	msgRect := Rect{X: r.X, Y: r.Y + r.H/2, W: r.W, H: r.H / 2}
	dl.Text(titleRect, c.Title, titleColor, alpha)
	dl.Text(msgRect, c.Message, ThemeID("text.secondary"), alpha)
}

// LogPanel is a scrolling, auto-growing list of LogCards plus a footer
// showing system status and autosave time, modeled on LogPanel's
// m_scroll_view/m_list_content/m_footer_box composition.
type LogPanel struct {
	Base

	scroll  *ScrollView
	list    *VBox
	footer  *HBox

	systemStatus   LocalizedText
	autosaveStatus string

	autoScroll bool

	visibleCards int
}

// NewLogPanel builds a LogPanel showing up to visibleCards rows before
// scrolling, matching LogPanel's LIST_VISIBLE_HEIGHT = 4 * BASE_HEIGHT
// default of 4 visible rows.
func NewLogPanel(visibleCards int) *LogPanel {
	if visibleCards <= 0 {
		visibleCards = 4
	}
	p := &LogPanel{autoScroll: true, visibleCards: visibleCards}
	p.Base = NewBase(p)

	p.list = NewVBox()
	p.list.Padding = 4
	p.list.SetWidthPolicy(Stretch(1))
	p.list.SetHeightPolicy(Content())

	p.scroll = NewScrollView()
	p.scroll.SetWidthPolicy(Stretch(1))
	p.scroll.SetHeightPolicy(Fixed(float32(visibleCards) * logCardBaseHeight))
	p.scroll.SetContent(p.list)

	p.footer = NewHBox()
	p.footer.Padding = 8
	p.footer.SetWidthPolicy(Stretch(1))
	p.footer.SetHeightPolicy(Fixed(20))

	p.Base.AddChild(p.scroll)
	p.Base.AddChild(p.footer)

	return p
}

// AddLog appends a new card to the list and, if AutoScroll is enabled,
// scrolls to show it.
func (p *LogPanel) AddLog(kind LogKind, title, message string) {
	card := NewLogCard(kind, title, message)
	p.list.AddChild(card)
	if p.autoScroll {
		p.scroll.ScrollOffset = p.scroll.MaxScroll()
	}
}

// SetSystemStatus sets the localization key shown in the footer's
// status slot.
func (p *LogPanel) SetSystemStatus(key string) { p.systemStatus.Key = key }

// SetAutoSaveTime sets the literal (already-formatted) autosave-time
// string shown in the footer.
func (p *LogPanel) SetAutoSaveTime(text string) { p.autosaveStatus = text }

// SetAutoScroll toggles whether newly appended logs pull the scroll
// view to the bottom.
func (p *LogPanel) SetAutoScroll(v bool) { p.autoScroll = v }

// Draw paints the scroll view and list via the default composite walk,
// then overlays the footer's status/autosave text directly -- the
// footer HBox itself carries no drawable children, just the layout
// rect its two text slots share.
func (p *LogPanel) Draw(dl DrawList) {
	if !p.Visible() {
		return
	}
	p.Base.Draw(dl)

	alpha := p.EffectiveAlpha()
	r := p.footer.AbsoluteRect()
	half := Rect{X: r.X, Y: r.Y, W: r.W / 2, H: r.H}
	other := Rect{X: r.X + r.W/2, Y: r.Y, W: r.W / 2, H: r.H}
	dl.Text(half, p.systemStatus.Resolve(Default()), ThemeID("text.secondary"), alpha)
	dl.Text(other, p.autosaveStatus, ThemeID("text.secondary"), alpha)
}
