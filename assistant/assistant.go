// Package assistant answers reader questions about the catalog with an
// ordered table of pattern rules over a per-session context history.
package assistant

import "errors"

// Greeting is the assistant's opening line. It is shown as-is, without the
// reply prefix.
const Greeting = "Hello! I'm Assistant Mr. Effort, your guide to the world of Life Could Be A Dream. I can help you with information about stories, characters, timeline, author details, and the entire universe. What would you like to know?"

const replyPrefix = "🦸‍♂️ Mr. Effort says: "

// ErrDeflected is returned for questions about the assistant itself. Callers
// show its message as the bot's reply.
var ErrDeflected = errors.New("Someone very important for this Comic World, maybe a Fourth Wall breaker perhaps!")

const (
	clarifyReply    = "Can you clarify who or what you're referring to? (e.g., character name, story, or power)"
	unresolvedReply = "I'm not sure who you're referring to. Please clarify your question."
	defaultReply    = "I'm not sure about that specific question, but I can help you with:\n\n• Author information (Jashan Bansal)\n• Story details and summaries\n• Character profiles and relationships\n• Timeline and universe lore\n• Power systems and abilities\n• Themes and concepts\n\nTry asking about any of these topics, or ask for help to see what I can assist you with!"
	helpReply       = "**I can help you with:**\n\n• **Author Information**: About Jashan Bansal, writing style, themes\n• **Universe Lore**: World-building, core concepts, setting\n• **Stories**: All story details, summaries, content previews\n• **Characters**: Character profiles, abilities, relationships\n• **Timeline**: Chronological events and their significance\n• **Powers**: Power types, users, limitations\n• **Story Arcs**: Different story series and their themes\n• **Character Relationships**: How characters are connected\n• **Themes**: Deeper meanings and concepts\n\nJust ask me anything about the Life Could Be A Dream universe!"
)

// say wraps a reply in the assistant's voice.
func say(text string) string {
	return replyPrefix + text
}
