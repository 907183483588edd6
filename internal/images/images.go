// Package images draws the daily matchday calendar and the group-stage
// standings over a background bitmap, producing PNG bytes ready for the chat.
package images

import (
	"bytes"
	"fmt"
	"image"
	"time"

	"github.com/fogleman/gg"
	xdraw "golang.org/x/image/draw"

	"github.com/ForgiaDev/mondialito/internal/footballdata"
)

const (
	canvasWidth  = 1280
	canvasHeight = 720
)

// Renderer draws graphics on a shared background with a shared font.
type Renderer struct {
	backgroundPath string
	fontPath       string
}

func NewRenderer(backgroundPath, fontPath string) *Renderer {
	return &Renderer{backgroundPath: backgroundPath, fontPath: fontPath}
}

// newCanvas loads the background, scales it to the canvas size and dims it so
// white text stays readable.
func (r *Renderer) newCanvas() (*gg.Context, error) {
	bg, err := gg.LoadImage(r.backgroundPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load background: %w", err)
	}

	scaled := image.NewRGBA(image.Rect(0, 0, canvasWidth, canvasHeight))
	xdraw.ApproxBiLinear.Scale(scaled, scaled.Bounds(), bg, bg.Bounds(), xdraw.Over, nil)

	dc := gg.NewContext(canvasWidth, canvasHeight)
	dc.DrawImage(scaled, 0, 0)
	dc.SetRGBA(0, 0, 0, 0.85)
	dc.DrawRectangle(0, 0, canvasWidth, canvasHeight)
	dc.Fill()
	dc.SetRGB(1, 1, 1)
	return dc, nil
}

func (r *Renderer) setFont(dc *gg.Context, size float64) error {
	if err := dc.LoadFontFace(r.fontPath, size); err != nil {
		return fmt.Errorf("failed to load font %s: %w", r.fontPath, err)
	}
	return nil
}

func encodePNG(dc *gg.Context) ([]byte, error) {
	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}
	return buf.Bytes(), nil
}

// Matchday draws the fixtures of one day in two columns: kickoff time and
// stage tag, then home and away rows with the full-time score or a dash.
func (r *Renderer) Matchday(day time.Time, matches []footballdata.Match) ([]byte, error) {
	dc, err := r.newCanvas()
	if err != nil {
		return nil, err
	}

	if err := r.setFont(dc, 40); err != nil {
		return nil, err
	}
	title := fmt.Sprintf("Matchday %s", day.Format("02/01/2006"))
	dc.DrawStringAnchored(title, canvasWidth/2, 100, 0.5, 0.5)

	x := float64(canvasWidth/2 - 400)
	y := float64(canvasHeight/2 - 200)
	for i, match := range matches {
		// second column after two fixtures
		if i == 2 {
			x = canvasWidth/2 + 50
			y = canvasHeight/2 - 200
		}

		if err := r.setFont(dc, 20); err != nil {
			return nil, err
		}
		dc.DrawString(matchHeading(match, day.Location()), x, y)
		y += 40

		if err := r.setFont(dc, 30); err != nil {
			return nil, err
		}
		homeScore, awayScore := scoreLabels(match)
		dc.DrawString(match.HomeTeam.Name, x, y)
		dc.DrawString(homeScore, x+300, y)
		y += 60

		dc.DrawString(match.AwayTeam.Name, x, y)
		dc.DrawString(awayScore, x+300, y)
		y += 90
	}

	return encodePNG(dc)
}

// Standings draws every group table in a column per half of the canvas.
func (r *Renderer) Standings(standings *footballdata.StandingsResponse) ([]byte, error) {
	dc, err := r.newCanvas()
	if err != nil {
		return nil, err
	}

	x := float64(canvasWidth/2 - 400)
	y := float64(canvasHeight/2 - 200)
	for i, group := range standings.Standings {
		if i > 0 && i == len(standings.Standings)/2 {
			x = canvasWidth/2 + 50
			y = canvasHeight/2 - 200
		}

		if err := r.setFont(dc, 40); err != nil {
			return nil, err
		}
		dc.DrawString(group.Group, x, y)
		y += 50

		if err := r.setFont(dc, 30); err != nil {
			return nil, err
		}
		for _, entry := range group.Table {
			dc.DrawString(standingLine(entry), x, y)
			y += 40
		}
		y += 30
	}

	return encodePNG(dc)
}

// matchHeading is the small line above a fixture: local kickoff time plus the
// group, or the stage when the match has no group.
func matchHeading(match footballdata.Match, loc *time.Location) string {
	kickoff := match.UTCDate.In(loc).Format("15:04")
	tag := match.Group
	if tag == "" {
		tag = match.Stage
	}
	return fmt.Sprintf("%s  [%s]", kickoff, tag)
}

func scoreLabels(match footballdata.Match) (home, away string) {
	ft := match.Score.FullTime
	if match.Status != footballdata.StatusFinished || ft.Home == nil || ft.Away == nil {
		return "-", "-"
	}
	return fmt.Sprintf("%d", *ft.Home), fmt.Sprintf("%d", *ft.Away)
}

func standingLine(entry footballdata.TableEntry) string {
	return fmt.Sprintf("%d. %s - %d points", entry.Position, entry.Team.Name, entry.Points)
}
