// Package coordination implements the Coordination Engine and Nesting
// Engine (spec §4.5): cleanup, the ordered coordination pattern battery,
// and the ordered nesting pattern battery that together turn a flat
// TokenSequence into a forest of Coordinates.
package coordination

import (
	"strings"

	"github.com/dlclark/regexp2"

	"github.com/Lexparency/lexref"
	"github.com/Lexparency/lexref/coordtree"
	"github.com/Lexparency/lexref/internal/patterns"
	"github.com/Lexparency/lexref/model"
	"github.com/Lexparency/lexref/token"
)

// Item is one element of a Sequence: either a raw token or a reference to
// a Coordinate already built in the owning Arena.
type Item struct {
	IsCoordinate bool
	Tok          token.RefToken
	Node         int // valid iff IsCoordinate
}

// Sequence is the mutable working set the Coordination/Nesting Engine
// rewrites in place, right-to-left, until it stabilises.
type Sequence struct {
	Items []Item
	Arena *coordtree.Arena
	lm    *model.LanguageModel
	cls   *patterns.Classifier
	lang  string
}

// New builds a Sequence from a flat token list in the given language.
func New(lm *model.LanguageModel, cls *patterns.Classifier, lang string, tokens []token.RefToken) *Sequence {
	items := make([]Item, len(tokens))
	for i, t := range tokens {
		items[i] = Item{Tok: t}
	}
	return &Sequence{Items: items, Arena: &coordtree.Arena{}, lm: lm, cls: cls, lang: lang}
}

func (s *Sequence) axisOf(i int) token.RefToken {
	if s.Items[i].IsCoordinate {
		return s.Arena.Node(s.Items[i].Node).Axis
	}
	return s.Items[i].Tok
}

func (s *Sequence) tagValue(i int) string {
	return s.axisOf(i).Tag.Value
}

func (s *Sequence) group(i int) model.Group {
	if s.Items[i].IsCoordinate {
		return model.GroupCoordinate
	}
	return s.Items[i].Tok.Tag.Group
}

func (s *Sequence) levelOf(i int) int {
	if s.Items[i].IsCoordinate {
		return s.Arena.Node(s.Items[i].Node).Level
	}
	lvl, _ := s.lm.AxisLevel(s.tagValue(i))
	return lvl
}

func (s *Sequence) removeAt(i int) {
	s.Items = append(s.Items[:i], s.Items[i+1:]...)
}

func (s *Sequence) insertAt(i int, it Item) {
	s.Items = append(s.Items, Item{})
	copy(s.Items[i+1:], s.Items[i:])
	s.Items[i] = it
}

// groups renders the §4.5 "groups" projection.
func (s *Sequence) groups() string {
	gs := make([]model.Group, len(s.Items))
	for i := range s.Items {
		gs[i] = s.group(i)
	}
	return patterns.GroupProjection(gs)
}

// values renders the §4.5 "values" projection.
func (s *Sequence) values() string {
	isCoord := make([]bool, len(s.Items))
	tags := make([]string, len(s.Items))
	for i := range s.Items {
		isCoord[i] = s.Items[i].IsCoordinate
		if !isCoord[i] {
			tags[i] = s.Items[i].Tok.Tag.Value
		}
	}
	return s.cls.ValueProjection(isCoord, tags)
}

type matchSpan struct{ start, end int }

// rightToLeftMatches runs re against s and returns every non-overlapping
// match, rightmost first, so a caller can safely mutate s's underlying
// items right-to-left while iterating.
func rightToLeftMatches(re *regexp2.Regexp, s string) []matchSpan {
	var out []matchSpan
	m, _ := re.FindStringMatch(s)
	for m != nil {
		out = append(out, matchSpan{start: m.Index, end: m.Index + m.Length})
		m, _ = re.FindNextMatch(m)
	}
	for l, r := 0, len(out)-1; l < r; l, r = l+1, r-1 {
		out[l], out[r] = out[r], out[l]
	}
	return out
}

// newCoordinate allocates a Coordinate node and returns it wrapped as an
// Item, ready to be inserted into the sequence in place of its source
// tokens.
func (s *Sequence) newCoordinate(axis, value token.RefToken, level int) Item {
	return Item{IsCoordinate: true, Node: s.Arena.New(axis, value, level)}
}

func anonAxis(tag string, span token.Span) token.RefToken {
	return token.AnonymousAxis(tag, span)
}

// ---- Cleanup -------------------------------------------------------------

var orphanAxesBase = `(?<![XPREVX:SRNK])Group.axis$`
var axisConnectorBase = `^axis:connector`
var ofDayBase = `SPCLPR:NM$`
var firstEndBase = `SRNK$`

// cleanup runs the seven cleanup rules to a fixed point, capped at 16
// iterations per spec §4.5.
func (s *Sequence) cleanup() error {
	orphanAxes, err := s.cls.Compile(orphanAxesBase)
	if err != nil {
		return err
	}
	axisConnector, err := patterns.CompileGroupPattern(axisConnectorBase)
	if err != nil {
		return err
	}
	ofDay, err := s.cls.Compile(ofDayBase)
	if err != nil {
		return err
	}
	firstEnd, err := s.cls.Compile(firstEndBase)
	if err != nil {
		return err
	}

	for round := 0; round < 16; round++ {
		effect := false

		for len(s.Items) > 0 && !s.Items[0].IsCoordinate &&
			s.group(0) == model.GroupConnector &&
			s.tagValue(0) != "THEREOF" && s.tagValue(0) != "BRCRPL" {
			s.removeAt(0)
			effect = true
		}

		for len(s.Items) > 0 && !s.Items[0].IsCoordinate &&
			s.group(0) == model.GroupValue && s.tagValue(0) != "SRNK" {
			s.removeAt(0)
			effect = true
		}

		if ok, _ := orphanAxes.MatchString(s.values()); ok && len(s.Items) > 0 {
			if s.tagValue(len(s.Items)-1) != "ANX" {
				effect = true
				s.removeAt(len(s.Items) - 1)
				if len(s.Items) != 0 {
					s.removeAt(len(s.Items) - 1)
				}
			}
		}

		if ok, _ := axisConnector.MatchString(s.groups()); ok && len(s.Items) > 0 {
			if s.tagValue(0) != "ANX" {
				effect = true
				s.removeAt(0)
				s.removeAt(0)
			}
		}

		if len(s.Items) == 1 {
			if s.group(0) != model.GroupNamedEntity && s.tagValue(0) != "ANX" {
				effect = true
				s.removeAt(0)
			}
		}

		if ok, _ := ofDay.MatchString(s.values()); ok && len(s.Items) >= 2 {
			effect = true
			s.removeAt(len(s.Items) - 1)
			s.removeAt(len(s.Items) - 1)
		}

		if ok, _ := firstEnd.MatchString(s.values()); ok && len(s.Items) != 2 && len(s.Items) > 0 {
			effect = true
			s.removeAt(len(s.Items) - 1)
		}

		if !effect {
			return nil
		}
	}
	return nil
}

// ---- Coordination battery -------------------------------------------------

// coordinated reports whether every remaining item is either a
// coordinate or a connector — the early-exit condition for the
// coordination battery.
func (s *Sequence) coordinated() bool {
	for i := range s.Items {
		g := s.group(i)
		if g != model.GroupCoordinate && g != model.GroupConnector {
			return false
		}
	}
	return true
}

func (s *Sequence) coordination() error {
	steps := []func() error{
		s.handleGenericContext,
		s.handleFourthDirective,
		s.handleSpokenLatin,
		s.handleSpokenRank,
		s.handleCoordinates,
		s.handleReReference,
		s.handleRangeConnected,
		s.handleConnectorValue,
		s.handleValueN,
		s.handleCoordinateConnectorValue,
		s.handleOrphanAnnex,
	}
	for _, step := range steps {
		if s.coordinated() {
			return nil
		}
		if err := step(); err != nil {
			return err
		}
	}
	return nil
}

// generic_context: a lone backref value is promoted to a Coordinate with
// an anonymous connector axis, level=10.
func (s *Sequence) handleGenericContext() error {
	re, err := s.cls.Compile(`[BRCRPL:THEREOF]`)
	if err != nil {
		return err
	}
	for _, m := range rightToLeftMatches(re, s.values()) {
		i := m.start
		value := s.Items[i].Tok
		axis := anonAxis("connector", value.Span)
		s.Items[i] = s.newCoordinate(axis, value, 10)
	}
	return nil
}

// fourth_directive: SRNK[REG|DIR|DEC] merge into one axis token.
func (s *Sequence) handleFourthDirective() error {
	re, err := s.cls.Compile(`SRNK[REG:DIR:DEC]`)
	if err != nil {
		return err
	}
	for _, m := range rightToLeftMatches(re, s.values()) {
		i := m.start
		this := s.Items[i].Tok
		axis := s.Items[i+1].Tok
		merged := token.RefToken{
			Tag:  axis.Tag,
			Span: token.Span{Start: this.Span.Start, End: axis.Span.End},
			Text: axis.Text + axis.Tail + this.Text,
			Tail: axis.Tail,
		}
		s.removeAt(i + 1)
		s.Items[i] = Item{Tok: merged}
	}
	return nil
}

// spoken_latin: a LATIN token directly after a value token becomes a
// numeric suffix on that value.
func (s *Sequence) handleSpokenLatin() error {
	re, err := s.cls.Compile(`(?<=Group.value)LATIN`)
	if err != nil {
		return err
	}
	for _, m := range rightToLeftMatches(re, s.values()) {
		i := m.start
		if i == 0 {
			continue
		}
		this := s.Items[i].Tok
		prev := s.Items[i-1].Tok
		suffix, _ := s.lm.ValueAsNumber(this.Text, "LATIN", "XX")
		if suffix == "" {
			suffix = strings.ToLower(this.Text)
		}
		if prev.Tag.Value != "NM" && prev.Text == strings.ToUpper(prev.Text) {
			suffix = strings.ToUpper(suffix)
		}
		prev.Span = token.Span{Start: prev.Span.Start, End: this.Span.End}
		prev.Tail = this.Tail
		prev.Suffix = suffix
		s.Items[i-1] = Item{Tok: prev}
		s.removeAt(i)
	}
	return nil
}

// spoken_rank: SRNK (connector SRNK)* axis — the trailing axis
// distributes over each preceding value.
func (s *Sequence) handleSpokenRank() error {
	re, err := s.cls.Compile(`SRNK(?<followers>Group.connector:SRNK)*Group.axis`)
	if err != nil {
		return err
	}
	for _, m := range rightToLeftMatches(re, s.values()) {
		axisIdx := m.end - 1
		axis := s.Items[axisIdx].Tok
		s.removeAt(axisIdx)
		for k := m.start; k < axisIdx; k++ {
			if s.group(k) == model.GroupConnector {
				continue
			}
			value := s.Items[k].Tok
			s.Items[k] = s.newCoordinate(axis, value, 0)
		}
	}
	return nil
}

// re_reference: an XPREVX axis followed by an axis token forms a
// back-reference coordinate on that following axis, whose value is an
// XPREVX-tagged quasi value.
func (s *Sequence) handleReReference() error {
	re, err := s.cls.Compile(`[XPREVX]Group.axis`)
	if err != nil {
		return err
	}
	for _, m := range rightToLeftMatches(re, s.values()) {
		i := m.start
		xprevx := s.Items[i].Tok
		axis := s.Items[i+1].Tok
		s.removeAt(i + 1)
		// The resulting coordinate carries the real structural axis
		// ("Article", "Chapter", ...) with a back-reference placeholder
		// value, not the marker itself as axis: the standardiser keys off
		// the value tag to recognise a back-reference (model.IsBackref),
		// and the joiner needs a real axis tag to anchor against recent
		// targets.
		value := token.QuasiValue(xprevx.Tag.Value, xprevx.Text, xprevx.Span)
		lvl, _ := s.lm.AxisLevel(axis.Tag.Value)
		s.Items[i] = s.newCoordinate(axis, value, lvl)
	}
	return nil
}

// coordinates: axis value | named_entity -> Coordinate.
func (s *Sequence) handleCoordinates() error {
	re, err := patterns.CompileGroupPattern(`(axis:value|named_entity)`)
	if err != nil {
		return err
	}
	for _, m := range rightToLeftMatches(re, s.groups()) {
		i := m.start
		if m.end-m.start == 1 {
			ne := s.Items[i].Tok
			axis := anonAxis("named_entity", ne.Span)
			s.Items[i] = s.newCoordinate(axis, ne, 0)
			continue
		}
		axis := s.Items[i].Tok
		value := s.Items[i+1].Tok
		s.removeAt(i + 1)
		lvl, _ := s.lm.AxisLevel(axis.Tag.Value)
		s.Items[i] = s.newCoordinate(axis, value, lvl)
	}
	return nil
}

// range_connected: coordinate value RC value (!value after) — each
// flanking value becomes a Coordinate under a shared anonymous axis.
func (s *Sequence) handleRangeConnected() error {
	re, err := s.cls.Compile(`Group.coordinate:Group.value:RC:Group.value(?!Group.value)`)
	if err != nil {
		return err
	}
	for _, m := range rightToLeftMatches(re, s.values()) {
		i := m.start
		first := s.Items[i+1].Tok
		last := s.Items[i+3].Tok
		if !model.ValueCompatible(first.Tag.Value, last.Tag.Value) {
			continue
		}
		leaderLevel := s.levelOf(i)
		lastItem := s.newCoordinate(anonAxis("range", last.Span), last, leaderLevel+1)
		s.Items[i+3] = lastItem
		s.removeAt(i + 2)
		firstItem := s.newCoordinate(anonAxis("range", first.Span), first, leaderLevel+1)
		s.Items[i+1] = firstItem
	}
	return nil
}

// connector_value: coordinate value* (connector:value+)+ coordinate? —
// each value adjacent to a valid join connector that is value-compatible
// with the leader becomes a sibling Coordinate under the leader's axis.
func (s *Sequence) handleConnectorValue() error {
	re, err := patterns.CompileGroupPattern(`(?<leader>coordinate)value*(?<buddies>(connector:value+)+)(?<after>coordinate)?`)
	if err != nil {
		return err
	}
	for _, m := range rightToLeftMatches(re, s.groups()) {
		leaderIdx := m.start
		leaderNode := s.Arena.Node(s.Items[leaderIdx].Node)

		// A trailing "after" coordinate sharing the leader's axis means the
		// buddies actually belong to whatever precedes the leader (e.g.
		// "points (a), (b) and (c) of the first subparagraph" parses the
		// first subparagraph as "after", so (a)/(b)/(c) join the coordinate
		// before it, not "first subparagraph" itself).
		if afterIdx := m.end - 1; afterIdx > leaderIdx && s.Items[afterIdx].IsCoordinate {
			afterNode := s.Arena.Node(s.Items[afterIdx].Node)
			if afterNode.Axis.Tag.Value == leaderNode.Axis.Tag.Value && leaderIdx > 0 && s.Items[leaderIdx-1].IsCoordinate {
				leaderIdx--
				leaderNode = s.Arena.Node(s.Items[leaderIdx].Node)
			}
		}

		for k := m.end - 1; k > leaderIdx; k-- {
			if k >= len(s.Items) {
				continue
			}
			if s.Items[k].IsCoordinate || s.group(k) != model.GroupValue {
				continue
			}
			connIdx := k - 1
			if connIdx <= leaderIdx || s.Items[connIdx].IsCoordinate || s.group(connIdx) != model.GroupConnector {
				continue
			}
			switch s.tagValue(connIdx) {
			case "RC", "COM", "AND", "OTHERX", "LF":
			default:
				continue
			}
			value := s.Items[k].Tok
			if !model.ValueCompatible(value.Tag.Value, leaderNode.Value.Tag.Value) {
				continue
			}
			s.Items[k] = s.newCoordinate(leaderNode.Axis, value, 0)
		}
	}
	return nil
}

// value_n: coordinate value+ — each trailing value becomes a child
// coordinate at leader.level + 1.
func (s *Sequence) handleValueN() error {
	re, err := patterns.CompileGroupPattern(`(?<leader>coordinate)value+`)
	if err != nil {
		return err
	}
	for _, m := range rightToLeftMatches(re, s.groups()) {
		leaderIdx := m.start
		level := s.levelOf(leaderIdx)
		for idx := leaderIdx + 1; idx < m.end; idx++ {
			value := s.Items[idx].Tok
			level++
			s.Items[idx] = s.newCoordinate(anonAxis("value_n", value.Span), value, level)
		}
	}
	return nil
}

// coordinate_connector_value: alternating coordinate (connector value)+
// where each connector is a join type and the value is compatible.
func (s *Sequence) handleCoordinateConnectorValue() error {
	re, err := patterns.CompileGroupPattern(`coordinate(connector:value)+`)
	if err != nil {
		return err
	}
	for _, m := range rightToLeftMatches(re, s.groups()) {
		leaderIdx := m.start
		leaderNode := s.Arena.Node(s.Items[leaderIdx].Node)
		for j := leaderIdx + 1; j+1 < m.end; j += 2 {
			switch s.tagValue(j) {
			case "RC", "AND", "OTHERX", "COM":
			default:
				j = m.end
				continue
			}
			value := s.Items[j+1].Tok
			if !model.ValueCompatible(leaderNode.Value.Tag.Value, value.Tag.Value) {
				continue
			}
			s.Items[j+1] = s.newCoordinate(leaderNode.Axis, value, 0)
		}
	}
	return nil
}

// orphan_annex: a standalone ANX axis becomes a Coordinate with a
// quasi-value tagged ANX.
func (s *Sequence) handleOrphanAnnex() error {
	re, err := s.cls.Compile(`(?<![XPREVX:SRNK])ANX(?!Group.value)`)
	if err != nil {
		return err
	}
	for _, m := range rightToLeftMatches(re, s.values()) {
		i := m.start
		axis := s.Items[i].Tok
		value := token.QuasiValue("ANX", axis.Text, axis.Span)
		lvl, _ := s.lm.AxisLevel("ANX")
		s.Items[i] = s.newCoordinate(axis, value, lvl)
	}
	return nil
}

// ---- Nesting ---------------------------------------------------------------

func (s *Sequence) nesting() error {
	if len(s.Items) <= 1 {
		return nil
	}
	coAndCo, err := s.cls.Compile(`^Group.coordinate:AND:Group.coordinate$`)
	if err != nil {
		return err
	}
	if ok, _ := coAndCo.MatchString(s.values()); ok {
		return nil
	}

	passes := []func() error{
		s.nestAdjacent,
		s.nestDesu,
		s.nestUnderThe,
		s.nestSiblings,
		s.nestCommaStairway,
		s.nestLeftOfRight,
	}
	for _, pass := range passes {
		if err := pass(); err != nil {
			return err
		}
	}
	return s.nestRest()
}

// nestAdjacent sweeps each run of pure coordinates and nests by strictly
// increasing level, or reverses the relation when an unparented successor
// at a lower level is axis-compatible with its precursor.
func (s *Sequence) nestAdjacent() error {
	i := 0
	for i < len(s.Items) {
		if !s.Items[i].IsCoordinate {
			i++
			continue
		}
		j := i + 1
		for j < len(s.Items) && s.Items[j].IsCoordinate {
			j++
		}
		if err := s.nestRun(i, j); err != nil {
			return err
		}
		i = j
	}
	return nil
}

func (s *Sequence) nestRun(start, end int) error {
	for k := start + 1; k < end; k++ {
		prev, cur := s.Items[k-1].Node, s.Items[k].Node
		prevLevel := s.Arena.Node(prev).Level
		curLevel := s.Arena.Node(cur).Level
		if s.Arena.Node(cur).Parent != coordtree.NoNode {
			continue
		}
		switch {
		case curLevel > prevLevel:
			s.Arena.Attach(prev, cur)
		case curLevel < prevLevel && s.Arena.Node(prev).Parent == coordtree.NoNode &&
			s.lm.AxisCompatible(s.Arena.Node(prev).Axis.Tag.Value, s.Arena.Node(cur).Axis.Tag.Value):
			s.Arena.Attach(cur, prev)
		}
	}
	return nil
}

// desu: Coordinate XDESUX Coordinate — attach the left as a child of the
// right, after lifting the left out of any ancestors whose level is below
// its own (see reparentBelow); those ancestors themselves are not moved.
func (s *Sequence) nestDesu() error {
	re, err := s.cls.Compile(`Group.coordinate:XDESUX:Group.coordinate`)
	if err != nil {
		return err
	}
	for _, m := range rightToLeftMatches(re, s.values()) {
		left := s.Items[m.start].Node
		right := s.Items[m.end-1].Node
		s.reparentBelow(left, s.Arena.Node(left).Level)
		s.Arena.Attach(right, left)
	}
	return nil
}

// reparentBelow moves node itself up the tree: while node's parent has a
// level below threshold, node is detached from that parent and attached
// to the parent's own parent (or left a root when there is none). Only
// node moves; no ancestor is reparented.
func (s *Sequence) reparentBelow(node, threshold int) {
	parent := s.Arena.Node(node).Parent
	for parent != coordtree.NoNode && s.Arena.Node(parent).Level < threshold {
		grandparent := s.Arena.Node(parent).Parent
		s.Arena.Detach(node)
		if grandparent != coordtree.NoNode {
			s.Arena.Attach(grandparent, node)
		}
		parent = grandparent
	}
}

// co_underthe_co: Coordinate SPPLCR Coordinate — same as desu but also
// iterates the right coordinate's children (the left's new siblings),
// moving each one deeper than the left under the left.
func (s *Sequence) nestUnderThe() error {
	re, err := s.cls.Compile(`Group.coordinate:SPPLCR:Group.coordinate`)
	if err != nil {
		return err
	}
	for _, m := range rightToLeftMatches(re, s.values()) {
		left := s.Items[m.start].Node
		right := s.Items[m.end-1].Node
		s.reparentBelow(left, s.Arena.Node(left).Level)
		s.Arena.Attach(right, left)
		for _, sibling := range append([]int{}, s.Arena.Node(right).Children...) {
			if sibling != left && s.Arena.Node(sibling).Level > s.Arena.Node(left).Level {
				s.Arena.Attach(left, sibling)
			}
		}
	}
	return nil
}

// siblings: every coordinate sharing an axis token with another and still
// orphaned is attached to that token's parent.
func (s *Sequence) nestSiblings() error {
	seen := map[string]int{} // axis tag|text -> item index of first sighting
	for i := range s.Items {
		if !s.Items[i].IsCoordinate {
			continue
		}
		node := s.Items[i].Node
		axis := s.Arena.Node(node).Axis
		key := axis.Tag.Value + "|" + axis.Text
		if first, ok := seen[key]; ok {
			firstNode := s.Items[first].Node
			parent := s.Arena.Node(firstNode).Parent
			if parent != coordtree.NoNode && s.Arena.Node(node).Parent == coordtree.NoNode {
				s.Arena.Attach(parent, node)
			}
		} else {
			seen[key] = i
		}
	}
	return nil
}

// comma_stairway: (Coordinate COM)+Coordinate — a chain of strictly
// increasing levels becomes a parent chain until monotonicity breaks.
func (s *Sequence) nestCommaStairway() error {
	re, err := s.cls.Compile(`(Group.coordinate:COM)+Group.coordinate`)
	if err != nil {
		return err
	}
	for _, m := range rightToLeftMatches(re, s.values()) {
		var chain []int
		for idx := m.start; idx < m.end; idx++ {
			if s.Items[idx].IsCoordinate {
				chain = append(chain, s.Items[idx].Node)
			}
		}
		for k := 1; k < len(chain); k++ {
			if s.Arena.Node(chain[k]).Level <= s.Arena.Node(chain[k-1]).Level {
				break
			}
			s.Arena.Attach(chain[k-1], chain[k])
		}
	}
	return nil
}

// left_of_right: Coordinate+ (SPCLPR|XDESUX) Coordinate — the last child
// of the left group becomes a child of the right coordinate when their
// axes' tags match (or the child has no parent yet).
func (s *Sequence) nestLeftOfRight() error {
	re, err := s.cls.Compile(`(?<subs>Group.coordinate+)[SPCLPR:XDESUX]:Group.coordinate(?!Group.coordinate)`)
	if err != nil {
		return err
	}
	for _, m := range rightToLeftMatches(re, s.values()) {
		var subs []int
		for idx := m.start; idx < m.end-1; idx++ {
			if s.Items[idx].IsCoordinate && s.tagValue(idx) != "SPCLPR" && s.tagValue(idx) != "XDESUX" {
				subs = append(subs, s.Items[idx].Node)
			}
		}
		if len(subs) == 0 {
			continue
		}
		last := subs[len(subs)-1]
		right := s.Items[m.end-1].Node
		existingParent := s.Arena.Node(last).Parent
		if existingParent == coordtree.NoNode {
			s.Arena.Attach(right, last)
			continue
		}
		if s.Arena.Node(existingParent).Axis.Tag.Value == s.Arena.Node(right).Axis.Tag.Value {
			s.Arena.Attach(right, last)
		}
	}
	return nil
}

// rest: fixed point (<=4 rounds) combining sibling-nesting and the
// adjacent pass until no edge is added.
func (s *Sequence) nestRest() error {
	for round := 0; round < 4; round++ {
		before := s.countEdges()
		if err := s.nestSiblings(); err != nil {
			return err
		}
		if err := s.nestAdjacent(); err != nil {
			return err
		}
		if s.countEdges() == before {
			return nil
		}
	}
	return nil
}

func (s *Sequence) countEdges() int {
	n := 0
	for i := 0; i < s.Arena.Len(); i++ {
		if s.Arena.Node(i).Parent != coordtree.NoNode {
			n++
		}
	}
	return n
}

// Finalize runs cleanup, coordination, and nesting in order, matching
// TokenSequence.finalize(). A Sequence that ends up empty after cleanup
// is left with zero Items; callers should treat that as "no references
// here" rather than an error.
func (s *Sequence) Finalize() error {
	if err := s.cleanup(); err != nil {
		return err
	}
	if len(s.Items) == 0 {
		return nil
	}
	if err := s.coordination(); err != nil {
		return err
	}
	if len(s.Items) == 0 {
		return nil
	}
	if !s.verifyLevels() {
		return lexref.NewError(lexref.NestingError, "coordinate levels violate parent<child invariant before nesting")
	}
	if err := s.nesting(); err != nil {
		return err
	}
	if !s.verifyLevels() {
		return lexref.NewError(lexref.NestingError, "coordinate levels violate parent<child invariant after nesting")
	}
	return nil
}

// verifyLevels checks invariant 3: within any parent/child edge,
// parent.level < child.level.
func (s *Sequence) verifyLevels() bool {
	for i := 0; i < s.Arena.Len(); i++ {
		n := s.Arena.Node(i)
		for _, c := range n.Children {
			if n.Level >= s.Arena.Node(c).Level {
				return false
			}
		}
	}
	return true
}

// Roots returns the item indices of top-level coordinates once Finalize
// has run.
func (s *Sequence) Roots() []int {
	var out []int
	for i := range s.Items {
		if s.Items[i].IsCoordinate && s.Arena.Node(s.Items[i].Node).Parent == coordtree.NoNode {
			out = append(out, s.Items[i].Node)
		}
	}
	return out
}
