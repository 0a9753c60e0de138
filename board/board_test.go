package board_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/peovukea/Pathfinding-visualization/board"
	"github.com/peovukea/Pathfinding-visualization/gridgraph"
	"github.com/peovukea/Pathfinding-visualization/internal/logging"
	"github.com/peovukea/Pathfinding-visualization/layout"
)

func newBoard(rows int) *board.Board {
	b, err := board.New(rows, rows*10, logging.Discard())
	So(err, ShouldBeNil)
	return b
}

func TestBoardEditing(t *testing.T) {
	Convey("Given an empty 4x4 board", t, func() {
		b := newBoard(4)

		Convey("The first click places the start, the second the end, later ones barriers", func() {
			So(b.Place(0, 0), ShouldBeNil)
			So(b.Place(3, 3), ShouldBeNil)
			So(b.Place(1, 1), ShouldBeNil)
			So(b.Layout(), ShouldEqual, "S...\n.#..\n....\n...E\n")

			Convey("Clicking the start or end again changes nothing", func() {
				So(b.Place(0, 0), ShouldBeNil)
				So(b.Place(3, 3), ShouldBeNil)
				So(b.Layout(), ShouldEqual, "S...\n.#..\n....\n...E\n")
			})

			Convey("Erasing the start lets the next click place a new one", func() {
				So(b.Erase(0, 0), ShouldBeNil)
				So(b.Place(2, 0), ShouldBeNil)
				So(b.Layout(), ShouldEqual, "....\n.#..\nS...\n...E\n")
			})

			Convey("A start placed on a barrier replaces it", func() {
				So(b.Erase(0, 0), ShouldBeNil)
				So(b.Place(1, 1), ShouldBeNil)
				So(b.Layout(), ShouldEqual, "....\n.S..\n....\n...E\n")
			})

			Convey("Clear empties the board", func() {
				So(b.Clear(), ShouldBeNil)
				So(b.Layout(), ShouldEqual, "....\n....\n....\n....\n")
			})
		})

		Convey("With no start, clicking nothing but the end cell is ignored", func() {
			So(b.Place(0, 0), ShouldBeNil)
			So(b.Place(3, 3), ShouldBeNil)
			So(b.Erase(0, 0), ShouldBeNil)
			So(b.Place(3, 3), ShouldBeNil)
			So(b.Layout(), ShouldEqual, "....\n....\n....\n...E\n")
		})

		Convey("Pixel clicks map x to the column and y to the row", func() {
			So(b.PlaceAt(35, 5), ShouldBeNil)
			So(b.Snapshot().At(0, 3), ShouldEqual, layout.RuneStart)
			So(b.PlaceAt(400, 400), ShouldBeNil)
			So(b.EraseAt(35, 5), ShouldBeNil)
			So(b.Layout(), ShouldEqual, "....\n....\n....\n....\n")
		})

		Convey("Out of range clicks report ErrOutOfBounds", func() {
			So(errors.Is(b.Place(4, 0), gridgraph.ErrOutOfBounds), ShouldBeTrue)
			So(errors.Is(b.Erase(0, -1), gridgraph.ErrOutOfBounds), ShouldBeTrue)
		})

		Convey("Run without both endpoints fails", func() {
			_, err := b.Run(context.Background(), nil)
			So(err, ShouldEqual, board.ErrNoEndpoints)
		})
	})
}

func TestBoardSearch(t *testing.T) {
	Convey("Given the detour board", t, func() {
		g, err := layout.ParseString("S..\n#.#\nE..\n", 30)
		So(err, ShouldBeNil)
		b := board.FromGrid(g, logging.Discard())

		Convey("Run finds the path and reports every step", func() {
			var frames []board.Snapshot
			out, err := b.Run(context.Background(), func(s board.Snapshot) { frames = append(frames, s) })
			So(err, ShouldBeNil)
			So(out.Status, ShouldEqual, board.StatusFound)
			So(out.Length, ShouldEqual, 4)
			So(out.Steps, ShouldEqual, 7)
			So(len(frames), ShouldEqual, 7)
			So(frames[0].Step, ShouldEqual, 1)
			So(b.Layout(), ShouldEqual, "S*o\n#*#\nE*o\n")
			So(b.Outcome().Status, ShouldEqual, board.StatusFound)

			Convey("Running again clears the previous marks first", func() {
				So(b.Place(0, 2), ShouldBeNil) // now a barrier
				out, err := b.Run(context.Background(), nil)
				So(err, ShouldBeNil)
				So(out.Length, ShouldEqual, 4)
				So(b.Layout(), ShouldEqual, "S*#\n#*#\nE*o\n")
			})
		})

		Convey("Edits during a search are refused", func() {
			var placeErr, runErr error
			var during board.Snapshot
			_, err := b.Run(context.Background(), func(s board.Snapshot) {
				if s.Step == 1 {
					placeErr = b.Place(2, 2)
					_, runErr = b.Run(context.Background(), nil)
					during = b.Snapshot()
				}
			})
			So(err, ShouldBeNil)
			So(placeErr, ShouldEqual, board.ErrBusy)
			So(runErr, ShouldEqual, board.ErrBusy)
			So(during.Step, ShouldEqual, 1)
			So(b.Running(), ShouldBeFalse)
		})

		Convey("A step blocked in onStep does not stall other callers", func() {
			stepped := make(chan struct{})
			release := make(chan struct{})
			done := make(chan struct{})
			go func() {
				defer close(done)
				_, _ = b.Run(context.Background(), func(s board.Snapshot) {
					if s.Step == 1 {
						close(stepped)
					}
					<-release
				})
			}()
			<-stepped

			type calls struct {
				snap                  board.Snapshot
				place, placeAt, clear error
			}
			results := make(chan calls, 1)
			go func() {
				var c calls
				c.snap = b.Snapshot()
				c.place = b.Place(2, 2)
				c.placeAt = b.PlaceAt(25, 25)
				c.clear = b.Clear()
				results <- c
			}()

			var got calls
			returned := false
			select {
			case got = <-results:
				returned = true
			case <-time.After(2 * time.Second):
			}
			close(release)
			<-done

			So(returned, ShouldBeTrue)
			So(got.snap.Step, ShouldEqual, 1)
			So(got.place, ShouldEqual, board.ErrBusy)
			So(got.placeAt, ShouldBeNil)
			So(got.clear, ShouldEqual, board.ErrBusy)
			So(b.Outcome().Status, ShouldEqual, board.StatusFound)
		})

		Convey("Snapshots racing the start of a run never block", func() {
			for i := 0; i < 50; i++ {
				release := make(chan struct{})
				done := make(chan struct{})
				go func() {
					defer close(done)
					_, _ = b.Run(context.Background(), func(board.Snapshot) { <-release })
				}()

				snapped := make(chan struct{})
				go func() {
					b.Snapshot()
					_ = b.PlaceAt(5, 5) // the start cell: a no-op when idle
					close(snapped)
				}()

				returned := false
				select {
				case <-snapped:
					returned = true
				case <-time.After(2 * time.Second):
				}
				close(release)
				<-done
				So(returned, ShouldBeTrue)
			}
		})

		Convey("Cancel stops the search", func() {
			out, err := b.Run(context.Background(), func(board.Snapshot) {
				So(b.Cancel(), ShouldBeTrue)
			})
			So(err, ShouldBeNil)
			So(out.Status, ShouldEqual, board.StatusCancelled)
			So(out.Steps, ShouldEqual, 1)
			So(b.Cancel(), ShouldBeFalse)
		})
	})

	Convey("Given a board whose end is walled off", t, func() {
		g, err := layout.ParseString("S..\n###\n..E\n", 30)
		So(err, ShouldBeNil)
		b := board.FromGrid(g, logging.Discard())

		Convey("Run reports not found and the barrier hint", func() {
			out, err := b.Run(context.Background(), nil)
			So(err, ShouldBeNil)
			So(out.Status, ShouldEqual, board.StatusNotFound)
			So(out.Barriers, ShouldEqual, 1)

			raw, err := json.Marshal(out)
			So(err, ShouldBeNil)
			So(string(raw), ShouldContainSubstring, `"status":"not_found"`)
		})
	})
}

func TestBoardReplace(t *testing.T) {
	Convey("Replace swaps in a parsed layout", t, func() {
		b := newBoard(4)
		g, err := layout.ParseString("S.\n.E\n", 20)
		So(err, ShouldBeNil)
		So(b.Replace(g), ShouldBeNil)

		snap := b.Snapshot()
		So(snap.Rows, ShouldEqual, 2)
		So(snap.Size, ShouldEqual, 10)
		So(snap.Text(), ShouldEqual, "S.\n.E\n")
		So(snap.Outcome.Status, ShouldEqual, board.StatusIdle)
	})
}
