// SPDX-License-Identifier: MPL-2.0

package container

import (
	"errors"
	"testing"
)

func TestFormatVolumeMount(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		mount VolumeMount
		want  string
	}{
		{
			name:  "read-write",
			mount: VolumeMount{HostPath: "/host", ContainerPath: "/ctr"},
			want:  "/host:/ctr",
		},
		{
			name:  "read-only",
			mount: VolumeMount{HostPath: "/creds/adc.json", ContainerPath: "/tmp/keys/creds.json", ReadOnly: true},
			want:  "/creds/adc.json:/tmp/keys/creds.json:ro",
		},
		{
			name:  "read-only with selinux label",
			mount: VolumeMount{HostPath: "/host", ContainerPath: "/ctr", ReadOnly: true, SELinux: SELinuxLabelShared},
			want:  "/host:/ctr:ro,z",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := FormatVolumeMount(tt.mount); got != tt.want {
				t.Errorf("FormatVolumeMount() = %q, want %q", got, tt.want)
			}
			if got := tt.mount.String(); got != tt.want {
				t.Errorf("VolumeMount.String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestVolumeMount_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mount   VolumeMount
		wantErr error
	}{
		{name: "valid", mount: VolumeMount{HostPath: "/a", ContainerPath: "/b"}},
		{name: "blank host", mount: VolumeMount{HostPath: " ", ContainerPath: "/b"}, wantErr: ErrInvalidVolumeMount},
		{name: "blank container", mount: VolumeMount{HostPath: "/a"}, wantErr: ErrInvalidVolumeMount},
		{name: "bad label", mount: VolumeMount{HostPath: "/a", ContainerPath: "/b", SELinux: "x"}, wantErr: ErrInvalidSELinuxLabel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.mount.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("Validate() unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
