package main

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"github.com/hollowbrook/village-echoes/pkg/chat"
)

const PlaceHolderText = "Type your message here..."

// ConsoleUI is the BubbleTea model that runs the UI.
// https://github.com/charmbracelet/bubbletea
type ConsoleUI struct {
	config       *ConsoleConfig
	client       *http.Client
	game         *chat.NewGameResponse
	chatViewport viewport.Model
	metaViewport viewport.Model
	textarea     textarea.Model
	ready        bool
	width        int
	height       int
	err          error
	loading      bool

	// Per-villager transcript, keyed by villager ref
	history     map[string][]chat.ChatMessage
	suggestions []string
	lastNPCLine string

	// Villager selection state
	showVillagerModal bool
	selectedVillager  int
	currentVillager   int

	// Set once a guess has resolved the game
	gameOver     bool
	finalMessage string

	// Quit confirmation state
	showQuitModal bool

	// Progress bar state
	progressTick int
}

type interactResponseMsg struct {
	response *chat.InteractResponse
	err      error
}

type itemResponseMsg struct {
	response *chat.ConfirmItemResponse
	err      error
}

type guessResponseMsg struct {
	response *chat.GuessResponse
	err      error
}

type progressTickMsg struct{}

var (
	chatPanelStyle = lipgloss.NewStyle().
			PaddingTop(2).
			PaddingBottom(1).
			PaddingLeft(3).
			PaddingRight(0)

	metaPanelStyle = lipgloss.NewStyle().
			PaddingTop(2).
			PaddingBottom(0).
			PaddingLeft(0).
			PaddingRight(2)

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")). // pink
			Bold(true)

	speakerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("212")). // purple
			Bold(true)

	npcStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("86")) // green

	userStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")) // teal

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")) // red

	loadingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")) // yellow

	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")) // dark grey

	modalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(1, 2).
			Background(lipgloss.Color("235")).
			Foreground(lipgloss.Color("255"))

	modalTitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true).
			Align(lipgloss.Center)

	modalItemStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255"))

	modalSelectedItemStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("0")).
				Background(lipgloss.Color("205")).
				Bold(true)
)

var separatorStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("240")) // dark grey

func NewConsoleUI(cfg *ConsoleConfig, client *http.Client, game *chat.NewGameResponse) ConsoleUI {
	ta := textarea.New()
	ta.Placeholder = PlaceHolderText
	ta.Focus()
	ta.Prompt = promptStyle.Render(":: ")
	ta.CharLimit = 1000
	ta.SetWidth(50)
	ta.SetHeight(3)
	ta.ShowLineNumbers = false

	chatVp := viewport.New(50, 20)
	chatVp.MouseWheelEnabled = true

	metaVp := viewport.New(20, 20)

	history := make(map[string][]chat.ChatMessage, len(game.Villagers))
	for _, v := range game.Villagers {
		history[v.ID] = nil
	}

	return ConsoleUI{
		config:            cfg,
		client:            client,
		game:              game,
		textarea:          ta,
		chatViewport:      chatVp,
		metaViewport:      metaVp,
		ready:             false,
		history:           history,
		showVillagerModal: true,
		selectedVillager:  0,
		currentVillager:   0,
	}
}

func (m *ConsoleUI) villagerRef() string {
	return m.game.Villagers[m.currentVillager].ID
}

func (m *ConsoleUI) villagerTitle() string {
	return m.game.Villagers[m.currentVillager].Title
}

func (m *ConsoleUI) writeMetadata() string {
	var content strings.Builder
	content.WriteString(titleStyle.Render("VILLAGE ECHOES") + "\n\n")

	content.WriteString("Game ID:\n")
	content.WriteString(m.game.GameID.String()[:8] + "...\n\n")

	content.WriteString("Villagers:\n")
	for i, v := range m.game.Villagers {
		marker := "  "
		if i == m.currentVillager {
			marker = "▶ "
		}
		content.WriteString(marker + v.Title + "\n")
	}
	content.WriteString("\n")

	content.WriteString("Sealed locations:\n")
	for _, loc := range m.game.InaccessibleLocations {
		content.WriteString("• " + loc + "\n")
	}
	content.WriteString("\n")

	if len(m.suggestions) > 0 {
		content.WriteString("Suggested replies:\n")
		for _, s := range m.suggestions {
			content.WriteString("• " + s + "\n")
		}
		content.WriteString("\n")
	}

	content.WriteString("Commands:\n")
	content.WriteString("• Ctrl+C: Quit\n")
	content.WriteString("• Enter: Send\n")
	content.WriteString("• /talk: Switch villager\n")
	content.WriteString("• /confirm <item>: Pick up\n")
	content.WriteString("• /guess <location>: End game\n")
	content.WriteString("• /copy: Copy last line\n")
	content.WriteString("• /help: Help\n")

	return content.String()
}

// writeChatContent rebuilds the chat panel for the current villager and width
func (m *ConsoleUI) writeChatContent() {
	chatWidth := m.chatViewport.Width - 6 // Account for left(3) + right(3) padding

	var content strings.Builder
	content.WriteString(titleStyle.Render("ECHOES OF THE VILLAGE") + "\n\n")
	content.WriteString(fmt.Sprintf("You are speaking with %s.\n", m.villagerTitle()))
	content.WriteString("Type your messages below, or press Enter on an empty line to greet.\n\n")
	content.WriteString(separatorStyle.Render(strings.Repeat("─", max(chatWidth-6, 1))) + "\n\n")

	for _, msg := range m.history[m.villagerRef()] {
		switch msg.Role {
		case chat.ChatRoleNPC:
			content.WriteString(formatNPCResponse(msg.Content, m.villagerTitle(), chatWidth) + "\n\n")
		case chat.ChatRolePlayer:
			content.WriteString(userStyle.Render("You: ") + wordwrap.String(msg.Content, chatWidth-6) + "\n\n")
		}
	}

	if m.gameOver {
		content.WriteString(titleStyle.Render(m.finalMessage) + "\n\n")
		content.WriteString(promptStyle.Render("The game is over. Press Ctrl+C to exit.") + "\n\n")
	}

	if m.loading {
		content.WriteString(m.renderProgressBar())
	}

	m.chatViewport.SetContent(content.String())
	m.chatViewport.GotoBottom()
}

func (m ConsoleUI) Init() tea.Cmd {
	return textarea.Blink
}

func (m ConsoleUI) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.showVillagerModal {
		return m.updateVillagerModal(msg)
	}

	if m.showQuitModal {
		return m.updateQuitModal(msg)
	}

	var (
		tiCmd tea.Cmd
		vpCmd tea.Cmd
		mvCmd tea.Cmd
	)

	switch msg := msg.(type) {
	case tea.MouseMsg:
		m.chatViewport, vpCmd = m.chatViewport.Update(msg)
		m.textarea, tiCmd = m.textarea.Update(msg)
		m.metaViewport, mvCmd = m.metaViewport.Update(msg)
		return m, tea.Batch(tiCmd, vpCmd, mvCmd)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resizePanels()
		m.ready = true
		m.writeChatContent()
		m.metaViewport.SetContent(m.writeMetadata())

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.showQuitModal = true
			return m, nil
		case tea.KeyEnter:
			if m.loading || m.gameOver {
				return m, nil
			}

			input := strings.TrimSpace(m.textarea.Value())
			if strings.HasPrefix(input, "/") {
				return m.handleCommand(input)
			}

			m.textarea.Reset()
			m.loading = true
			m.progressTick = 0

			shown := input
			if shown == "" {
				shown = chat.DefaultOpener
			}
			ref := m.villagerRef()
			m.history[ref] = append(m.history[ref], chat.ChatMessage{
				Role:    chat.ChatRolePlayer,
				Content: shown,
			})
			m.writeChatContent()

			return m, tea.Batch(m.sendMessage(input), progressTick())
		}

	case interactResponseMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			m.writeChatContent()
			currentContent := m.chatViewport.View()
			errorMsg := errorStyle.Render("Error: "+msg.err.Error()) + "\n\n"
			m.chatViewport.SetContent(currentContent + errorMsg)
		} else {
			ref := m.villagerRef()
			m.history[ref] = append(m.history[ref], chat.ChatMessage{
				Role:    chat.ChatRoleNPC,
				Content: msg.response.NPCDialogue,
			})
			m.lastNPCLine = msg.response.NPCDialogue
			m.suggestions = msg.response.PlayerSuggestions
			m.writeChatContent()
			m.metaViewport.SetContent(m.writeMetadata())
		}
		m.chatViewport.GotoBottom()
		return m, nil

	case itemResponseMsg:
		m.loading = false
		m.writeChatContent()
		currentContent := m.chatViewport.View()
		if msg.err != nil {
			m.chatViewport.SetContent(currentContent + errorStyle.Render("Error: "+msg.err.Error()) + "\n\n")
		} else {
			m.chatViewport.SetContent(currentContent + loadingStyle.Render(msg.response.Message) + "\n\n")
		}
		m.chatViewport.GotoBottom()
		return m, nil

	case guessResponseMsg:
		m.loading = false
		if msg.err != nil {
			m.writeChatContent()
			currentContent := m.chatViewport.View()
			m.chatViewport.SetContent(currentContent + errorStyle.Render("Error: "+msg.err.Error()) + "\n\n")
			m.chatViewport.GotoBottom()
			return m, nil
		}
		m.gameOver = true
		m.finalMessage = msg.response.Message
		m.writeChatContent()
		return m, nil

	case progressTickMsg:
		if m.loading {
			m.progressTick++
			m.writeChatContent()
			return m, progressTick()
		}
	}

	m.textarea, tiCmd = m.textarea.Update(msg)
	m.chatViewport, vpCmd = m.chatViewport.Update(msg)
	m.metaViewport, mvCmd = m.metaViewport.Update(msg)

	return m, tea.Batch(tiCmd, vpCmd, mvCmd)
}

func (m *ConsoleUI) resizePanels() {
	chatWidth := int(float64(m.width)*0.75) - 4
	metaWidth := m.width - chatWidth - 6

	m.chatViewport.Width = chatWidth - 2
	m.chatViewport.Height = m.height - 7
	m.metaViewport.Width = metaWidth - 2
	m.metaViewport.Height = m.height - 4
	m.textarea.SetWidth(chatWidth - 4)
}

func formatNPCResponse(response string, speaker string, width int) string {
	prefix := speaker + ": "
	wrapWidth := width - len(prefix)
	if wrapWidth < 10 {
		wrapWidth = 10
	}
	wrapped := wordwrap.String(response, wrapWidth)
	return speakerStyle.Render(prefix) + npcStyle.Render(wrapped)
}

func (m ConsoleUI) handleCommand(input string) (tea.Model, tea.Cmd) {
	cmd := strings.TrimSpace(input)
	lower := strings.ToLower(cmd)

	switch {
	case lower == "/help":
		helpText := `
Commands:
• /talk - Switch to another villager
• /confirm <item> - Pick up an item a villager offered
• /guess <location> - Name the hidden location and end the game
• /copy - Copy the last villager line to the clipboard
• Ctrl+C - Quit

How to play:
• Talk to villagers to learn what the village is hiding
• Earn trust; some villagers only open up to a familiar face
• When you are sure, guess the sealed location
`
		currentContent := m.chatViewport.View()
		m.chatViewport.SetContent(currentContent + titleStyle.Render("Help:") + helpText + "\n")
		m.chatViewport.GotoBottom()

	case lower == "/talk":
		m.showVillagerModal = true
		m.selectedVillager = m.currentVillager
		m.textarea.Reset()
		return m, nil

	case lower == "/copy":
		if m.lastNPCLine != "" {
			if err := clipboard.WriteAll(m.lastNPCLine); err != nil {
				currentContent := m.chatViewport.View()
				m.chatViewport.SetContent(currentContent + errorStyle.Render("Error: "+err.Error()) + "\n\n")
				m.chatViewport.GotoBottom()
			}
		}

	case strings.HasPrefix(lower, "/confirm "):
		itemID := strings.TrimSpace(cmd[len("/confirm "):])
		if itemID != "" {
			m.textarea.Reset()
			m.loading = true
			m.progressTick = 0
			return m, tea.Batch(m.sendConfirm(itemID), progressTick())
		}

	case strings.HasPrefix(lower, "/guess "):
		location := strings.TrimSpace(cmd[len("/guess "):])
		if location != "" {
			m.textarea.Reset()
			m.loading = true
			m.progressTick = 0
			return m, tea.Batch(m.sendGuess(location), progressTick())
		}
	}

	m.textarea.Reset()
	return m, nil
}

func (m ConsoleUI) sendMessage(message string) tea.Cmd {
	ref := m.villagerRef()
	return func() tea.Msg {
		resp, err := sendInteract(m.client, m.config.APIBaseURL, m.game.GameID, ref, message)
		return interactResponseMsg{resp, err}
	}
}

func (m ConsoleUI) sendConfirm(itemID string) tea.Cmd {
	return func() tea.Msg {
		resp, err := confirmItem(m.client, m.config.APIBaseURL, m.game.GameID, itemID)
		return itemResponseMsg{resp, err}
	}
}

func (m ConsoleUI) sendGuess(location string) tea.Cmd {
	return func() tea.Msg {
		resp, err := submitGuess(m.client, m.config.APIBaseURL, m.game.GameID, location)
		return guessResponseMsg{resp, err}
	}
}

func (m ConsoleUI) updateVillagerModal(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.showQuitModal = true
			return m, nil
		case tea.KeyUp:
			if m.selectedVillager > 0 {
				m.selectedVillager--
			}
		case tea.KeyDown:
			if m.selectedVillager < len(m.game.Villagers)-1 {
				m.selectedVillager++
			}
		case tea.KeyEnter:
			m.currentVillager = m.selectedVillager
			m.showVillagerModal = false
			m.suggestions = nil
			if m.width > 0 && m.height > 0 {
				m.resizePanels()
				m.ready = true
			}
			m.writeChatContent()
			m.metaViewport.SetContent(m.writeMetadata())
			m.textarea.Focus()
			return m, textarea.Blink
		}
	}

	return m, nil
}

func (m ConsoleUI) updateQuitModal(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc, tea.KeyEnter:
			return m, tea.Quit
		default:
			switch msg.String() {
			case "y", "Y":
				return m, tea.Quit
			case "n", "N":
				m.showQuitModal = false
				if m.showVillagerModal {
					return m, nil
				}
				m.textarea.Focus()
				return m, textarea.Blink
			}
		}
	}

	return m, nil
}

func (m ConsoleUI) renderQuitModal() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	var content strings.Builder
	content.WriteString(modalTitleStyle.Render("Quit Game?"))
	content.WriteString("\n\n")
	content.WriteString("Are you sure you want to leave the village?")
	content.WriteString("\n\n")
	content.WriteString(promptStyle.Render("Press Y to quit, N to continue, or Ctrl+C to force quit"))

	modal := modalStyle.Width(50).Render(content.String())
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, modal, lipgloss.WithWhitespaceChars(" "))
}

func (m ConsoleUI) renderVillagerModal() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	var content strings.Builder
	content.WriteString(modalTitleStyle.Render("Who do you approach?"))
	content.WriteString("\n\n")

	for i, v := range m.game.Villagers {
		if i == m.selectedVillager {
			content.WriteString(modalSelectedItemStyle.Render(fmt.Sprintf("▶ %s", v.Title)))
		} else {
			content.WriteString(modalItemStyle.Render(fmt.Sprintf("  %s", v.Title)))
		}
		content.WriteString("\n")
	}

	content.WriteString("\n")
	content.WriteString(promptStyle.Render("Use ↑/↓ to navigate, Enter to select, Ctrl+C to exit"))

	modal := modalStyle.Width(60).Render(content.String())
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, modal, lipgloss.WithWhitespaceChars(" "))
}

func (m ConsoleUI) View() string {
	if m.showVillagerModal {
		return m.renderVillagerModal()
	}

	if m.showQuitModal {
		return m.renderQuitModal()
	}

	if !m.ready {
		return "\n  Initializing..."
	}

	chatWidth := int(float64(m.width)*0.75) - 4
	metaWidth := m.width - chatWidth - 6

	chatPanel := chatPanelStyle.Width(chatWidth).Height(m.height - 3).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			m.chatViewport.View(),
			"",
			separatorStyle.Render(strings.Repeat("─", max(chatWidth-4, 1))),
			m.textarea.View(),
		),
	)

	metaPanel := metaPanelStyle.Width(metaWidth).Height(m.height - 2).Render(
		m.metaViewport.View(),
	)

	return lipgloss.JoinHorizontal(lipgloss.Top, chatPanel, metaPanel)
}

// renderProgressBar creates an animated progress bar for loading states
func (m ConsoleUI) renderProgressBar() string {
	usable := m.chatViewport.Width - 6
	if usable <= 0 {
		usable = 30 // fallback before sizing
	}

	if usable > 80 {
		usable = 80
	} else if usable < 10 {
		usable = 10
	}

	const totalFrames = 40
	frame := m.progressTick % totalFrames
	filled := (frame * usable) / totalFrames

	var bar strings.Builder
	for i := 0; i < usable; i++ {
		if i < filled {
			bar.WriteString("█")
		} else if i == filled && frame%4 < 2 {
			bar.WriteString("▓")
		} else {
			bar.WriteString("░")
		}
	}
	return separatorStyle.Render(bar.String())
}

// progressTick creates a command that sends a progress tick message
func progressTick() tea.Cmd {
	return tea.Tick(time.Millisecond*200, func(time.Time) tea.Msg {
		return progressTickMsg{}
	})
}
