package web

const indexPage = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Mandelbrot</title>
<style>
body { margin: 0; background: #000; color: #ddd; font-family: monospace; }
#status { position: fixed; bottom: 0; left: 0; padding: 4px; background: rgba(0, 0, 0, 0.6); }
</style>
</head>
<body>
<img id="frame" alt="">
<div id="status">connecting</div>
<script>
const frame = document.getElementById("frame");
const status = document.getElementById("status");
const socket = new WebSocket((location.protocol === "https:" ? "wss://" : "ws://") + location.host + "/ws");
socket.binaryType = "blob";

const keys = {
	w: {kind: "pan", y: -1, elapsed: 0.1},
	s: {kind: "pan", y: 1, elapsed: 0.1},
	a: {kind: "pan", x: -1, elapsed: 0.1},
	d: {kind: "pan", x: 1, elapsed: 0.1},
	"+": {kind: "zoom-in", elapsed: 0.1},
	"-": {kind: "zoom-out", elapsed: 0.1},
	" ": {kind: "reset"},
	x: {kind: "iterations-up"},
	z: {kind: "iterations-down"},
	m: {kind: "iterations-toggle"},
};

function send(request) {
	if (socket.readyState === WebSocket.OPEN) {
		socket.send(JSON.stringify(request));
	}
}

socket.onmessage = (event) => {
	if (typeof event.data === "string") {
		const reply = JSON.parse(event.data);
		const s = reply.status;
		status.textContent = "real [" + s.minReal + ", " + s.maxReal + "] imag [" + s.minImag + ", " + s.maxImag + "] iterations " + s.maxIterations + (reply.error ? " error: " + reply.error : "");
		return;
	}
	const url = URL.createObjectURL(event.data);
	frame.onload = () => URL.revokeObjectURL(url);
	frame.src = url;
};

socket.onopen = () => send({kind: "resize", x: window.innerWidth, y: window.innerHeight});
window.onresize = () => send({kind: "resize", x: window.innerWidth, y: window.innerHeight});
document.onkeydown = (event) => {
	const request = keys[event.key];
	if (request) {
		send(request);
	}
};
frame.onclick = (event) => send({kind: "center", x: event.offsetX, y: event.offsetY});
frame.onwheel = (event) => {
	event.preventDefault();
	send({kind: "scroll", y: event.deltaY < 0 ? 1 : -1});
};
</script>
</body>
</html>
`
