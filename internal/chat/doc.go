// Waypoint - Sightseeing Recommendation and Conversational Trip Planning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/waypoint

// Package chat turns free-text traveller messages into replies.
//
// The Orchestrator runs the chat-driven recommendation flow as an explicit
// state machine:
//
//	Received -> IntentParsed -> StartResolved -> CandidatesLoaded -> Ranked
//
// Every state can end the flow with a terminal outcome (apology, ask_start,
// no_match or answered). No external call is retried within one message.
//
// The Router sits in front of the Orchestrator. It classifies each message
// as chat or recommend and dispatches it, asking anonymous users to identify
// themselves before any recommendation work is done.
package chat
