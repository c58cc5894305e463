package osmparser

import (
	"fmt"
)

type NetworkType string

const (
	NetworkDrive        NetworkType = "drive"
	NetworkDriveService NetworkType = "drive_service"
	NetworkWalk         NetworkType = "walk"
	NetworkBike         NetworkType = "bike"
	NetworkAll          NetworkType = "all"
	NetworkAllPrivate   NetworkType = "all_private"
	NetworkNone         NetworkType = "none"
	NetworkRail         NetworkType = "rail"
)

func ParseNetworkType(s string) (NetworkType, error) {
	n := NetworkType(s)
	if _, ok := networkFilters[n]; !ok {
		return "", fmt.Errorf("unknown network type %q", s)
	}
	return n, nil
}

type wayFilter struct {
	requiredKey string
	exclude     map[string]map[string]struct{}
}

func set(values ...string) map[string]struct{} {
	m := make(map[string]struct{}, len(values))
	for _, v := range values {
		m[v] = struct{}{}
	}
	return m
}

var networkFilters = map[NetworkType]wayFilter{
	NetworkDrive: {
		requiredKey: "highway",
		exclude: map[string]map[string]struct{}{
			"area": set("yes"),
			"highway": set("abandoned", "bridleway", "bus_guideway", "construction", "corridor", "cycleway",
				"elevator", "escalator", "footway", "path", "pedestrian", "planned", "platform", "proposed",
				"raceway", "service", "steps", "track"),
			"motor_vehicle": set("no"),
			"motorcar":      set("no"),
			"access":        set("private"),
			"service":       set("parking", "parking_aisle", "driveway", "private", "emergency_access"),
		},
	},
	NetworkDriveService: {
		requiredKey: "highway",
		exclude: map[string]map[string]struct{}{
			"area": set("yes"),
			"highway": set("abandoned", "bridleway", "construction", "corridor", "cycleway", "elevator",
				"escalator", "footway", "path", "pedestrian", "planned", "platform", "proposed", "raceway",
				"steps", "track"),
			"motor_vehicle": set("no"),
			"motorcar":      set("no"),
			"access":        set("private"),
			"service":       set("emergency_access", "parking", "parking_aisle", "private"),
		},
	},
	NetworkWalk: {
		requiredKey: "highway",
		exclude: map[string]map[string]struct{}{
			"area": set("yes"),
			"highway": set("abandoned", "bus_guideway", "construction", "cycleway", "motor", "planned",
				"platform", "proposed", "raceway", "motorway", "motorway_link"),
			"foot":    set("no"),
			"service": set("private"),
			"access":  set("private"),
		},
	},
	NetworkBike: {
		requiredKey: "highway",
		exclude: map[string]map[string]struct{}{
			"area": set("yes"),
			"highway": set("abandoned", "bus_guideway", "construction", "corridor", "elevator", "escalator",
				"footway", "motor", "planned", "platform", "proposed", "raceway", "steps"),
			"bicycle": set("no"),
			"service": set("private"),
			"access":  set("private"),
		},
	},
	NetworkAll: {
		requiredKey: "highway",
		exclude: map[string]map[string]struct{}{
			"area":    set("yes"),
			"highway": set("abandoned", "construction", "planned", "platform", "proposed", "raceway"),
			"service": set("private"),
			"access":  set("private"),
		},
	},
	NetworkAllPrivate: {
		requiredKey: "highway",
		exclude: map[string]map[string]struct{}{
			"area":    set("yes"),
			"highway": set("abandoned", "construction", "planned", "platform", "proposed", "raceway"),
		},
	},
	NetworkNone: {
		requiredKey: "highway",
	},
	NetworkRail: {
		requiredKey: "railway",
		exclude: map[string]map[string]struct{}{
			"railway": set("proposed", "platform", "abandoned", "construction"),
		},
	},
}

// Accept reports whether a way with the given tags belongs to the network.
func (n NetworkType) Accept(tags map[string]string) bool {
	filter, ok := networkFilters[n]
	if !ok {
		return false
	}
	if _, ok := tags[filter.requiredKey]; !ok {
		return false
	}
	for key, values := range filter.exclude {
		v, ok := tags[key]
		if !ok {
			continue
		}
		if _, excluded := values[v]; excluded {
			return false
		}
	}
	return true
}
