package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"kitchenmate/internal/client"
	"kitchenmate/internal/models"
	"kitchenmate/internal/planner"
)

var (
	barStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#ff453a")).
			Padding(0, 1)

	shopDocStyle = lipgloss.NewStyle().Margin(1, 2)
)

// ShopCmd opens an interactive shopping list for a plan on a running server
type ShopCmd struct {
	Plan  string `arg:"" optional:"" help:"Plan id. Defaults to the most recent plan."`
	URL   string `help:"API base URL." default:"http://localhost:8080" env:"KITCHENMATE_API_URL"`
	Token string `help:"API bearer token." env:"KITCHENMATE_TOKEN"`
}

func (cmd *ShopCmd) Run(app *appContext) error {
	ctx := context.Background()
	c := client.New(cmd.URL, cmd.Token)
	if err := c.Health(ctx); err != nil {
		return fmt.Errorf("API server at %s is not available: %w", cmd.URL, err)
	}

	planID := cmd.Plan
	if planID == "" {
		plans, err := c.ListPlans(ctx)
		if err != nil {
			return err
		}
		if len(plans) == 0 {
			view, err := c.CreatePlan(ctx, "Demo week", true)
			if err != nil {
				return err
			}
			app.logger.Info("created demo plan", "plan", view.ID)
			planID = view.ID
		} else {
			planID = plans[0].ID
		}
	}

	if _, err := tea.NewProgram(newShopModel(c, planID), tea.WithAltScreen()).Run(); err != nil {
		return fmt.Errorf("error running shopping list: %w", err)
	}
	return nil
}

type shoppingClient interface {
	ShoppingList(ctx context.Context, planID string) (*client.ShoppingList, error)
	Toggle(ctx context.Context, planID, ingredient string) (*planner.View, error)
}

type shopItem struct {
	entry models.ShoppingListEntry
}

func (i shopItem) Title() string {
	if i.entry.Checked {
		return "✓ " + i.entry.Name
	}
	return "○ " + i.entry.Name
}

func (i shopItem) Description() string {
	return fmt.Sprintf("%.2f %s · %s", i.entry.Amount, i.entry.Unit, i.entry.Category)
}

func (i shopItem) FilterValue() string { return i.entry.Name }

type shopKeyMap struct {
	Toggle  key.Binding
	Refresh key.Binding
	Quit    key.Binding
}

func defaultShopKeyMap() shopKeyMap {
	return shopKeyMap{
		Toggle: key.NewBinding(
			key.WithKeys("x", " "),
			key.WithHelp("x/space", "check"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

type shoppingListMsg struct {
	groups []planner.CategoryGroup
}

type shopErrorMsg struct {
	err string
}

type shopModel struct {
	client  shoppingClient
	planID  string
	list    list.Model
	spinner spinner.Model
	keys    shopKeyMap
	loading bool
	status  string
	err     string
}

func newShopModel(c shoppingClient, planID string) shopModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	keys := defaultShopKeyMap()
	l := list.New([]list.Item{}, list.NewDefaultDelegate(), 80, 20)
	l.Title = "Shopping list"
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Toggle, keys.Refresh}
	}

	return shopModel{
		client:  c,
		planID:  planID,
		list:    l,
		spinner: s,
		keys:    keys,
		loading: true,
	}
}

func (m shopModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, fetchShoppingList(m.client, m.planID))
}

func (m shopModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		h, v := shopDocStyle.GetFrameSize()
		m.list.SetSize(msg.Width-h, msg.Height-v-2)
		return m, nil

	case tea.KeyMsg:
		if m.list.FilterState() == list.Filtering {
			break
		}
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Refresh):
			m.loading = true
			return m, tea.Batch(m.spinner.Tick, fetchShoppingList(m.client, m.planID))
		case key.Matches(msg, m.keys.Toggle):
			if i, ok := m.list.SelectedItem().(shopItem); ok && !m.loading {
				m.loading = true
				return m, tea.Batch(m.spinner.Tick, toggleItem(m.client, m.planID, i.entry.Name))
			}
			return m, nil
		}

	case shoppingListMsg:
		m.loading = false
		m.err = ""
		cmd := m.list.SetItems(shopItems(msg.groups))
		m.status = checkedStatus(msg.groups)
		return m, cmd

	case shopErrorMsg:
		m.loading = false
		m.err = msg.err
		return m, nil

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m shopModel) View() string {
	var footer string
	switch {
	case m.err != "":
		footer = errorStyle.Render(m.err)
	case m.loading:
		footer = m.spinner.View() + " syncing"
	default:
		footer = barStyle.Render(m.status)
	}
	return shopDocStyle.Render(m.list.View() + "\n" + footer)
}

func fetchShoppingList(c shoppingClient, planID string) tea.Cmd {
	return func() tea.Msg {
		sl, err := c.ShoppingList(context.Background(), planID)
		if err != nil {
			return shopErrorMsg{err: fmt.Sprintf("Error fetching shopping list: %v", err)}
		}
		return shoppingListMsg{groups: sl.Categories}
	}
}

func toggleItem(c shoppingClient, planID, ingredient string) tea.Cmd {
	return func() tea.Msg {
		view, err := c.Toggle(context.Background(), planID, ingredient)
		if err != nil {
			return shopErrorMsg{err: fmt.Sprintf("Error checking %s: %v", ingredient, err)}
		}
		return shoppingListMsg{groups: view.ShoppingList}
	}
}

func shopItems(groups []planner.CategoryGroup) []list.Item {
	items := make([]list.Item, 0)
	for _, group := range groups {
		for _, entry := range group.Items {
			items = append(items, shopItem{entry: entry})
		}
	}
	return items
}

func checkedStatus(groups []planner.CategoryGroup) string {
	total, checked := 0, 0
	var open []string
	for _, group := range groups {
		for _, entry := range group.Items {
			total++
			if entry.Checked {
				checked++
			} else if len(open) < 3 {
				open = append(open, entry.Name)
			}
		}
	}
	status := fmt.Sprintf("%d of %d checked", checked, total)
	if len(open) > 0 && checked < total {
		status += " · next: " + strings.Join(open, ", ")
	}
	return status
}
