package discord

// User-facing messages for bot responses.
// Centralized so wording stays consistent across commands.
const (
	MsgGithubNotLinked = "Your GitHub account hasn't been linked yet, please use `/linkgithub` to do it"
	MsgStackNotLinked  = "Your Stack Exchange account hasn't been linked yet, please use `/linkstack` to do it"
	MsgDMsClosed       = "Your DMs are closed. Open them so I can send you the authorization link."
	MsgLinkDMSent      = "Check your DMs for the authorization link."
	MsgLinkExpired     = "That link expired. Request a fresh one and try again."
	MsgServerError     = "Error connecting to the linking server."
	MsgNothingLinked   = "You haven't linked any accounts yet."
)
