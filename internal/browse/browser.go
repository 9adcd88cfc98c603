package browse

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"sync/atomic"
	"text/tabwriter"

	"github.com/spf13/cast"
)

// Browser drives the client view: it owns the state, issues fetches and
// renders. At most one fetch is in flight; every fetch carries a sequence
// number so a superseded response can never clobber newer state.
type Browser struct {
	client *Client
	state  State
	seq    uint64
}

func NewBrowser(client *Client) *Browser {
	return &Browser{client: client, state: NewState()}
}

func (b *Browser) State() State {
	return b.state
}

func (b *Browser) dispatch(a Action) {
	b.state = Reduce(b.state, a)
}

func (b *Browser) fetch(ctx context.Context, page int) {
	seq := atomic.AddUint64(&b.seq, 1)
	b.dispatch(FetchStarted{Seq: seq})

	payload, err := b.client.FetchPage(ctx, b.state.Active, page, b.state.Meta.PerPage)
	if err != nil {
		b.dispatch(FetchFailed{Seq: seq, Message: "Failed to load menus"})
		return
	}
	b.dispatch(PageLoaded{Seq: seq, Page: page, Payload: *payload})
}

// Refresh fetches page 1, replacing the accumulated list.
func (b *Browser) Refresh(ctx context.Context) {
	b.fetch(ctx, 1)
}

// LoadMore appends the next page when one exists and nothing is loading.
func (b *Browser) LoadMore(ctx context.Context) {
	if !b.state.CanLoadMore() {
		return
	}
	b.fetch(ctx, b.state.Meta.CurrentPage+1)
}

func (b *Browser) SetCuisine(ctx context.Context, slug string) {
	b.dispatch(FilterChanged{CuisineSlug: &slug})
	b.Refresh(ctx)
}

func (b *Browser) SetSort(ctx context.Context, sortBy string) {
	b.dispatch(FilterChanged{SortBy: &sortBy})
	b.Refresh(ctx)
}

func (b *Browser) SetGuests(ctx context.Context, guests int) {
	b.dispatch(FilterChanged{Guests: &guests})
	b.Refresh(ctx)
}

// Render writes the current list with per-guest totals.
func (b *Browser) Render(w io.Writer) {
	s := b.state
	if s.Err != "" {
		fmt.Fprintf(w, "error: %s\n", s.Err)
	}

	fmt.Fprintf(w, "Set menus (%d total), guests=%d", s.Meta.Total, s.Active.Guests)
	if s.Active.CuisineSlug != "" {
		fmt.Fprintf(w, ", cuisine=%s", s.Active.CuisineSlug)
	}
	if s.Active.SortBy != "" {
		fmt.Fprintf(w, ", sort=%s", s.Active.SortBy)
	}
	fmt.Fprintln(w)

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tCUISINES\tPER PERSON\tMIN SPEND\tTOTAL")
	for _, m := range s.Menus {
		names := make([]string, 0, len(m.Cuisines))
		for _, cu := range m.Cuisines {
			names = append(names, cu.Name)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			m.Name,
			strings.Join(names, ", "),
			m.PricePerPerson.StringFixed(2),
			m.MinSpend.StringFixed(2),
			TotalPrice(m, s.Active.Guests).StringFixed(2))
	}
	tw.Flush()

	fmt.Fprintf(w, "page %d/%d", s.Meta.CurrentPage, s.Meta.LastPage)
	if s.CanLoadMore() {
		fmt.Fprint(w, "  (more available)")
	}
	fmt.Fprintln(w)
}

// Run is the interactive loop used by the browse command.
func Run(ctx context.Context, baseURL string, in io.Reader, out io.Writer) error {
	b := NewBrowser(NewClient(baseURL))
	b.Refresh(ctx)
	b.Render(out)

	fmt.Fprintln(out, "commands: cuisine <slug>|cuisine -|sort <price_asc|price_desc|orders|->|guests <n>|more|quit")

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())
		cmd, arg, _ := strings.Cut(line, " ")
		arg = strings.TrimSpace(arg)

		switch cmd {
		case "quit", "q", "exit":
			return nil
		case "cuisine":
			if arg == "-" {
				arg = ""
			}
			b.SetCuisine(ctx, arg)
		case "sort":
			if arg == "-" {
				arg = ""
			}
			b.SetSort(ctx, arg)
		case "guests":
			n := cast.ToInt(arg)
			if n < 1 {
				fmt.Fprintln(out, "guests must be >= 1")
				continue
			}
			b.SetGuests(ctx, n)
		case "more":
			if !b.state.CanLoadMore() {
				fmt.Fprintln(out, "no more pages")
				continue
			}
			b.LoadMore(ctx)
		case "":
			continue
		default:
			fmt.Fprintf(out, "unknown command %q\n", cmd)
			continue
		}
		b.Render(out)
	}
}
